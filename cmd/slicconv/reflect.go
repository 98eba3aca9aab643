package main

import (
	"flag"
	"fmt"
	"reflect"
	"strconv"
)

func setupFlags(flags *flag.FlagSet, value reflect.Value) error {
	return reflectConfiguration(
		value,
		func(flagName, defaultValue, flagUsage string) bool {
			return flagName != ""
		},
		func(fieldValue reflect.Value, flagName, flagValue, flagUsage string) error {
			switch fieldValue.Kind() {
			case reflect.Int64:
				intValue, err := strconv.ParseInt(flagValue, 10, 64)
				if err != nil {
					return fmt.Errorf("default for -%s: %w", flagName, err)
				}
				flags.Int64(flagName, intValue, flagUsage)
			case reflect.Bool:
				boolValue, err := strconv.ParseBool(flagValue)
				if err != nil {
					return fmt.Errorf("default for -%s: %w", flagName, err)
				}
				flags.Bool(flagName, boolValue, flagUsage)
			case reflect.String:
				flags.String(flagName, flagValue, flagUsage)
			}
			return nil
		},
	)
}

func setDefaults(value reflect.Value) error {
	return reflectConfiguration(
		value,
		func(flagName, defaultValue, flagUsage string) bool {
			return defaultValue != ""
		},
		setField,
	)
}

func setFromFlags(flags *flag.FlagSet, value reflect.Value) error {
	setFlags := make(map[string]flag.Value)
	flags.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = f.Value
	})

	return reflectConfiguration(
		value,
		func(flagName, flagValue, flagUsage string) bool {
			_, ok := setFlags[flagName]
			return ok
		},
		func(fieldValue reflect.Value, flagName, flagValue, flagUsage string) error {
			return setField(fieldValue, flagName, setFlags[flagName].String(), flagUsage)
		},
	)
}

func setField(fieldValue reflect.Value, flagName, text, flagUsage string) error {
	switch fieldValue.Kind() {
	case reflect.Int64:
		intValue, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return fmt.Errorf("-%s: %w", flagName, err)
		}
		fieldValue.SetInt(intValue)
	case reflect.Bool:
		boolValue, err := strconv.ParseBool(text)
		if err != nil {
			return fmt.Errorf("-%s: %w", flagName, err)
		}
		fieldValue.SetBool(boolValue)
	case reflect.String:
		fieldValue.SetString(text)
	}
	return nil
}

func reflectConfiguration(
	value reflect.Value,
	shouldHandle func(flagName, flagValue, flagUsage string) bool,
	handle func(fieldValue reflect.Value, flagName, flagValue, flagUsage string) error,
) error {
	if value.Kind() != reflect.Struct {
		return nil
	}
	t := value.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		flagName := field.Tag.Get("flag")
		flagValue := field.Tag.Get("default")
		flagUsage := field.Tag.Get("usage")

		fieldValue := value.Field(i)

		if shouldHandle(flagName, flagValue, flagUsage) {
			if err := handle(fieldValue, flagName, flagValue, flagUsage); err != nil {
				return err
			}
		} else if fieldValue.Kind() == reflect.Struct {
			if err := reflectConfiguration(fieldValue, shouldHandle, handle); err != nil {
				return err
			}
		}
	}
	return nil
}
