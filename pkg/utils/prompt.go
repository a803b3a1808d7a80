package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"

	"github.com/sentinelx/sentinelx/pkg/simulation"
)

// PromptForParameters prompts the user for each declared simulation
// parameter. Environment variables of the form SENTINEL_<PARAM_NAME> take
// precedence as defaults, and SENTINEL_SKIP_PROMPTS=true suppresses the
// prompts entirely for automation.
func PromptForParameters(params []simulation.Parameter) (map[string]interface{}, error) {
	result := make(map[string]interface{})

	for _, param := range params {
		value, err := promptForParameter(param)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s: %w", param.Name, err)
		}
		result[param.Name] = value
	}

	return result, nil
}

func promptForParameter(param simulation.Parameter) (interface{}, error) {
	envKey := "SENTINEL_" + strings.ToUpper(param.Name)
	if envValue := os.Getenv(envKey); envValue != "" {
		parsed, err := parseValue(envValue, param.Type)
		if err == nil {
			if os.Getenv("SENTINEL_SKIP_PROMPTS") == "true" {
				return parsed, nil
			}
			param.Default = parsed
		}
	}

	if os.Getenv("SENTINEL_SKIP_PROMPTS") == "true" {
		if param.Default != nil {
			return param.Default, nil
		}
		if param.Required {
			return nil, fmt.Errorf("required parameter %s not provided and no default available", param.Name)
		}
		return nil, nil
	}

	switch param.Type {
	case "integer":
		return promptNumber(param, func(s string) (interface{}, error) {
			return strconv.Atoi(strings.TrimSpace(s))
		})
	case "float":
		return promptNumber(param, func(s string) (interface{}, error) {
			return strconv.ParseFloat(strings.TrimSpace(s), 64)
		})
	case "duration":
		return promptNumber(param, func(s string) (interface{}, error) {
			return time.ParseDuration(strings.TrimSpace(s))
		})
	case "boolean":
		return promptBoolean(param)
	case "string":
		if len(param.Options) > 0 {
			return promptSelect(param)
		}
		return promptString(param)
	default:
		return nil, fmt.Errorf("unsupported parameter type: %s", param.Type)
	}
}

// promptNumber prompts for a value parsed by parse, re-asking on bad input.
func promptNumber(param simulation.Parameter, parse func(string) (interface{}, error)) (interface{}, error) {
	prompt := &survey.Input{
		Message: promptMessage(param),
		Default: defaultString(param.Default),
	}

	var answer string
	if err := survey.AskOne(prompt, &answer, survey.WithValidator(func(ans interface{}) error {
		s, _ := ans.(string)
		if s == "" && param.Default != nil {
			return nil
		}
		_, err := parse(s)
		return err
	})); err != nil {
		return nil, err
	}

	if answer == "" && param.Default != nil {
		return param.Default, nil
	}
	return parse(answer)
}

func promptBoolean(param simulation.Parameter) (interface{}, error) {
	def := false
	if b, ok := param.Default.(bool); ok {
		def = b
	}

	var answer bool
	prompt := &survey.Confirm{
		Message: promptMessage(param),
		Default: def,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func promptString(param simulation.Parameter) (interface{}, error) {
	var answer string
	prompt := &survey.Input{
		Message: promptMessage(param),
		Default: defaultString(param.Default),
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return nil, err
	}
	if answer == "" && param.Required {
		return nil, fmt.Errorf("parameter %s is required", param.Name)
	}
	return answer, nil
}

func promptSelect(param simulation.Parameter) (interface{}, error) {
	var answer string
	prompt := &survey.Select{
		Message: promptMessage(param),
		Options: param.Options,
		Default: defaultString(param.Default),
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func promptMessage(param simulation.Parameter) string {
	if param.Description != "" {
		return fmt.Sprintf("%s (%s):", param.Name, param.Description)
	}
	return param.Name + ":"
}

func defaultString(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// parseValue parses an environment-variable override according to the
// declared parameter type.
func parseValue(value, paramType string) (interface{}, error) {
	switch paramType {
	case "integer":
		return strconv.Atoi(value)
	case "float":
		return strconv.ParseFloat(value, 64)
	case "duration":
		return time.ParseDuration(value)
	case "boolean":
		return strconv.ParseBool(value)
	case "string":
		return value, nil
	default:
		return nil, fmt.Errorf("unsupported parameter type: %s", paramType)
	}
}
