package classify

import (
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/leadmerge/pkg/errors"
)

// Group is a named set of keywords. A row matches a group when a searched
// column contains any of its keywords.
type Group struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Validate checks that the group is named and has usable keywords.
func (g Group) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return errors.NewValidationError("keyword_groups", g.Name, "group name must not be empty")
	}
	return validateKeywords("keyword_groups."+g.Name, g.Keywords)
}

func validateKeywords(field string, keywords []string) error {
	if len(keywords) == 0 {
		return errors.NewValidationError(field, keywords, "at least one keyword is required")
	}
	for _, k := range keywords {
		if k == "" {
			return errors.NewValidationError(field, keywords, "keywords must not be empty")
		}
	}
	return nil
}

// groupsFile is the on-disk layout of a keyword group file. Groups may sit
// under a keyword_groups key or at the top level.
type groupsFile struct {
	KeywordGroups map[string][]string `yaml:"keyword_groups"`
}

// LoadGroups reads keyword groups from a YAML file.
func LoadGroups(path string) ([]Group, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return ParseGroups(data, path)
}

// ParseGroups decodes keyword groups from YAML. name is used in errors.
func ParseGroups(data []byte, name string) ([]Group, error) {
	var file groupsFile
	if err := yaml.Unmarshal(data, &file); err == nil && len(file.KeywordGroups) > 0 {
		return GroupsFromMap(file.KeywordGroups)
	}

	var flat map[string][]string
	if err := yaml.Unmarshal(data, &flat); err != nil {
		return nil, errors.WrapParse("yaml", name, err)
	}
	if len(flat) == 0 {
		return nil, errors.NewConfigError("keyword_groups", name+" defines no keyword groups", nil)
	}
	return GroupsFromMap(flat)
}

// GroupsFromMap converts a name to keywords mapping into groups ordered
// lexically by name.
func GroupsFromMap(m map[string][]string) ([]Group, error) {
	groups := make([]Group, 0, len(m))
	for name, keywords := range m {
		g := Group{Name: name, Keywords: slices.Clone(keywords)}
		if err := g.Validate(); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	slices.SortFunc(groups, func(a, b Group) int { return strings.Compare(a.Name, b.Name) })
	return groups, nil
}

// Find returns the group with the given name.
func Find(groups []Group, name string) (Group, error) {
	for _, g := range groups {
		if g.Name == name {
			return g, nil
		}
	}
	return Group{}, errors.NewNotFoundError("keyword group", name)
}

// Flatten returns the keywords of every group, in group order, without
// repeats.
func Flatten(groups []Group) []string {
	var out []string
	seen := make(map[string]bool)
	for _, g := range groups {
		for _, k := range g.Keywords {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}

// Match returns the first keyword contained in value.
func Match(value string, keywords []string) (string, bool) {
	for _, k := range keywords {
		if strings.Contains(value, k) {
			return k, true
		}
	}
	return "", false
}
