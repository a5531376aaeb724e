package curriculum

// skillNode is one entry of a skill repository document.
type skillNode struct {
	Name      string      `yaml:"name"`
	Protected bool        `yaml:"protected"`
	Children  []skillNode `yaml:"children"`
}

// skillsDocument is the content of a *.skills.yaml file.
type skillsDocument struct {
	Key       string    `yaml:"key"`
	Root      skillNode `yaml:"root"`
	Available []string  `yaml:"available"`
}
