package main

import (
	"flag"
	"os"
)

// trainEnv maps each CLI flag onto the CORE_TRAIN_* key the train module reads
var trainEnv = map[string]string{
	"dataset":      "CORE_TRAIN_DATASET",
	"artifacts":    "CORE_TRAIN_ARTIFACT_DIR",
	"seed":         "CORE_TRAIN_SEED",
	"test-ratio":   "CORE_TRAIN_TEST_RATIO",
	"c":            "CORE_TRAIN_C",
	"max-iter":     "CORE_TRAIN_MAX_ITER",
	"min-df":       "CORE_TRAIN_MIN_DF",
	"max-features": "CORE_TRAIN_MAX_FEATURES",
}

// exportFlags copies only the flags given on the command line into the environment,
// so an explicit zero still wins over the module default
func exportFlags(fs *flag.FlagSet, keys map[string]string) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		key, ok := keys[f.Name]
		if !ok || err != nil {
			return
		}
		err = os.Setenv(key, f.Value.String())
	})
	return err
}
