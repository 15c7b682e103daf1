package util

import (
	"fmt"
	"strings"

	"github.com/imdario/mergo"
	"github.com/ohsu-comp-bio/balancer/config"
	"github.com/spf13/pflag"
)

func normalize(name string) string {
	from := []string{"-", "_"}
	to := "."
	for _, sep := range from {
		name = strings.Replace(name, sep, to, -1)
	}
	return strings.ToLower(name)
}

// NormalizeFlags allows for flags to be case and separator insensitive.
// Use it by passing it to cobra.Command.SetGlobalNormalizationFunc
func NormalizeFlags(f *pflag.FlagSet, name string) pflag.NormalizedName {
	lookup := map[string]string{"help": "help", normalize(name): name}

	f.VisitAll(func(f *pflag.Flag) {
		lookup[normalize(f.Name)] = f.Name
	})

	return pflag.NormalizedName(lookup[normalize(name)])
}

// MergeConfigFileWithFlags loads the config file, if any, over the defaults
// and then applies the values set by flags. Flag values override values in
// the config file.
//
// mergo skips zero values, so the flags in flags which were set explicitly
// are applied once more on top. This lets "--Policy.GenerationCount 0" or
// "--Policy.DiscardMutation=false" override the file. flags may be nil.
func MergeConfigFileWithFlags(file string, flagConf config.Config, flags *pflag.FlagSet) (config.Config, error) {
	conf := config.DefaultConfig()
	err := config.ParseFile(file, &conf)
	if err != nil {
		return conf, err
	}

	// file vals <- cli val
	err = mergo.MergeWithOverwrite(&conf, flagConf)
	if err != nil {
		return conf, err
	}

	if flags != nil {
		if err := applyChangedFlags(flags, &conf); err != nil {
			return conf, err
		}
	}
	return conf, nil
}

// applyChangedFlags copies the value of every changed flag in src which
// maps to a config field onto conf.
func applyChangedFlags(src *pflag.FlagSet, conf *config.Config) error {
	dst := ConfigFlags(conf)
	dst.SetNormalizeFunc(NormalizeFlags)

	var err error
	src.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		target := dst.Lookup(f.Name)
		if target == nil {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			if tv, ok := target.Value.(pflag.SliceValue); ok {
				err = tv.Replace(sv.GetSlice())
				return
			}
		}
		if serr := target.Value.Set(f.Value.String()); serr != nil {
			err = fmt.Errorf("applying flag %s: %w", f.Name, serr)
		}
	})
	return err
}
