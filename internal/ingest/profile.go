package ingest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inferloop/tabclean/pkg/errors"
	"github.com/inferloop/tabclean/pkg/models"
)

// LoadProfile reads a dataset profile from a YAML or JSON file,
// selected by extension (.json is JSON, everything else YAML). The
// profile is trusted input; only its shape is checked.
func LoadProfile(path string) (*models.DatasetProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeIngest, errors.CodeSourceNotFound, "Failed to read profile file")
	}

	var profile models.DatasetProfile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &profile)
	} else {
		err = yaml.Unmarshal(data, &profile)
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeIngest, errors.CodeDecodeFailed, "Failed to decode profile file")
	}

	if len(profile.Columns) == 0 {
		return nil, errors.NewIngestError(errors.CodeInvalidInput, "Profile contains no columns")
	}
	for _, col := range profile.Columns {
		if col.Name == "" {
			return nil, errors.NewIngestError(errors.CodeMissingField, "Profile column without a name")
		}
	}

	return &profile, nil
}
