package model

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// LoadConfig loads the named model configuration. The name is given without
// extension and is resolved against the given search paths, the working
// directory and ./configs.
func LoadConfig(model *Model, name string, searchPaths ...string) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	for _, path := range searchPaths {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "unable to read model config %q", name)
	}
	if err := v.Unmarshal(model); err != nil {
		return errors.Wrapf(err, "unable to unmarshal model config %q", name)
	}
	return model.Validate()
}
