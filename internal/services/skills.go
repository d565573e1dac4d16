package services

import "strings"

// SkillVocabulary is the built-in skill list served by the suggestions
// endpoint and seeded into the vector index by scripts/ingest_skills.go.
var SkillVocabulary = []string{
	"Python", "JavaScript", "Java", "C++", "React", "Node.js", "Angular", "Vue.js",
	"Machine Learning", "Data Science", "Artificial Intelligence", "Deep Learning",
	"SQL", "MongoDB", "PostgreSQL", "MySQL", "Redis", "Docker", "Kubernetes",
	"AWS", "Azure", "Google Cloud", "Git", "HTML", "CSS", "TypeScript",
	"Spring Boot", "Django", "Flask", "Express.js", "REST API", "GraphQL",
	"TensorFlow", "PyTorch", "Pandas", "NumPy", "Scikit-learn", "OpenCV",
	"Unity", "Unreal Engine", "Android", "iOS", "React Native", "Flutter",
	"Blockchain", "Ethereum", "Solidity", "DevOps", "CI/CD", "Jenkins",
	"Figma", "Adobe Photoshop", "Adobe Illustrator", "UI/UX Design",
	"Digital Marketing", "SEO", "SEM", "Social Media Marketing", "Content Writing",
}

// SuggestSkills filters the vocabulary by case-insensitive substring match
// and truncates to limit. This is the fallback when the vector index is not
// available.
func SuggestSkills(query string, limit int) []string {
	query = strings.ToLower(query)
	suggestions := make([]string, 0, limit)

	for _, skill := range SkillVocabulary {
		if strings.Contains(strings.ToLower(skill), query) {
			suggestions = append(suggestions, skill)
			if len(suggestions) == limit {
				break
			}
		}
	}

	return suggestions
}
