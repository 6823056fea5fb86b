package model

import "regexp"

// ModelInfo is the structured form of a composite model id
// "Project_Institute_Name". The name part may itself contain
// underscores.
type ModelInfo struct {
	Project   string
	Institute string
	Name      string
}

var modelNamePattern = regexp.MustCompile(`^([^_]+)_([^_]+)_(.*)$`)

// ParseModelName splits a composite model id into its parts. An id
// that doesn't follow the composite form is not an error: the whole
// id becomes the name and project/institute stay empty.
func ParseModelName(id string) ModelInfo {
	matches := modelNamePattern.FindStringSubmatch(id)
	if matches == nil {
		return ModelInfo{Name: id}
	}
	return ModelInfo{
		Project:   matches[1],
		Institute: matches[2],
		Name:      matches[3],
	}
}
