// Package config provides helpers over the viper configuration shared by
// every command.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/agentstation/leadmerge/pkg/classify"
	"github.com/agentstation/leadmerge/pkg/errors"
)

// Configuration keys.
const (
	KeyKeywordGroups = "keyword_groups"
	KeyLabels        = "labels"
	KeyGroupsFile    = "groups_file"
)

// Labels returns the configured provenance labels, trimmed, in order.
func Labels() []string {
	raw := viper.GetStringSlice(KeyLabels)
	labels := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}

// KeywordGroups returns the keyword groups from path, or from the
// keyword_groups section of the loaded config file when path is empty.
//
// Viper folds map keys to lower case, so the section is decoded from the
// config file itself to keep group names as written.
func KeywordGroups(path string) ([]classify.Group, error) {
	if path == "" {
		path = viper.GetString(KeyGroupsFile)
	}
	if path != "" {
		return classify.LoadGroups(path)
	}

	used := viper.ConfigFileUsed()
	if used == "" || !viper.IsSet(KeyKeywordGroups) {
		return nil, errors.NewConfigError(KeyKeywordGroups, "no keyword groups configured; pass --groups or set keyword_groups in the config file", nil)
	}
	return classify.LoadGroups(used)
}
