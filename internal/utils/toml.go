package utils

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/ironlog/internal/models"
)

func ParseRoutineFromTOML(path string) (*models.RoutineTOML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var routine models.RoutineTOML
	if err := toml.Unmarshal(data, &routine); err != nil {
		return nil, err
	}

	return &routine, nil
}

func ParseImportFromTOML(path string) (*models.ImportTOML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var imp models.ImportTOML
	if err := toml.Unmarshal(data, &imp); err != nil {
		return nil, err
	}

	return &imp, nil
}
