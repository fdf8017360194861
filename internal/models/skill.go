package models

// Skill is an entry of the skill catalog
type Skill struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"skillName"`
	ProjectID int64  `json:"projectId,omitempty"`
}

// SkillNames returns the names of the given skills in order
func SkillNames(skills []Skill) []string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}
