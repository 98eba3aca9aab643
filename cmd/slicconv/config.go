package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/BurntSushi/toml"
)

// Configuration holds every setting slicconv reads. Values come from the
// field defaults, then the TOML file named by -config, then flags given on
// the command line.
type Configuration struct {
	File string `toml:"-" flag:"config" default:"" usage:"Path to a TOML configuration file"`

	BufferSize  int64 `toml:"buffer_size"   flag:"buffer-size" default:"1024" usage:"I/O buffer size in bytes"`
	Colorspace  int64 `toml:"colorspace"    flag:"colorspace"  default:"-1"   usage:"Colorspace tag to write (0-4, -1 for the format default)"`
	RowsPerCall int64 `toml:"rows_per_call" flag:"rows"        default:"1"    usage:"Scanlines handed to the codec per call"`
	Stats       bool  `toml:"stats"         flag:"stats"       default:"false" usage:"Print size statistics with a zstd reference"`
	Verbose     bool  `toml:"verbose"       flag:"v"           default:"false" usage:"Log each processing step"`
}

// Validate checks ranges the codec cannot check for us.
func (c Configuration) Validate() error {
	if c.BufferSize < 0 {
		return fmt.Errorf("buffer_size must not be negative, got %d", c.BufferSize)
	}
	if c.Colorspace < -1 || c.Colorspace > 4 {
		return fmt.Errorf("colorspace must be -1 or 0-4, got %d", c.Colorspace)
	}
	if c.RowsPerCall < 1 {
		return fmt.Errorf("rows_per_call must be at least 1, got %d", c.RowsPerCall)
	}
	return nil
}

// Parse builds the configuration from args (without the program name) and
// returns the remaining positional arguments.
func Parse(args []string, usageOut io.Writer) (Configuration, []string, error) {
	config := Configuration{}

	flags := flag.NewFlagSet("slicconv", flag.ContinueOnError)
	flags.SetOutput(usageOut)
	flags.Usage = func() {
		fmt.Fprintln(usageOut, "usage: slicconv [flags] <in.png|in.slc> [out]")
		fmt.Fprintln(usageOut, "       slicconv [flags] <out.slc>   (writes the RGB565 demo image)")
		flags.PrintDefaults()
	}
	if err := setupFlags(flags, reflect.ValueOf(config)); err != nil {
		return config, nil, err
	}
	if err := flags.Parse(args); err != nil {
		return config, nil, err
	}

	if err := setDefaults(reflect.ValueOf(&config).Elem()); err != nil {
		return config, nil, err
	}
	if err := parseConfigFile(flags, &config); err != nil {
		return config, nil, err
	}
	if err := setFromFlags(flags, reflect.ValueOf(&config).Elem()); err != nil {
		return config, nil, err
	}
	return config, flags.Args(), config.Validate()
}

func parseConfigFile(flags *flag.FlagSet, config *Configuration) error {
	configFile := flags.Lookup("config").Value.String()
	if configFile == "" {
		return nil
	}
	config.File = configFile
	_, err := toml.DecodeFile(configFile, config)
	if errors.Is(err, os.ErrNotExist) {
		Printf("%s Config file '%s' does not exist and will not be used.", System, configFile)
		return nil
	}
	if err != nil {
		return fmt.Errorf("config file %s: %w", configFile, err)
	}
	return nil
}
