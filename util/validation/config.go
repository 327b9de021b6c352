package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"nodesim/util/file"
)

var validate = validator.New()

// ValidateConfig reports every configuration problem at once.
func ValidateConfig(config *file.Config) error {
	// add config validation here
	var err []string = make([]string, 0, 2)

	if structErr := validate.Struct(config); structErr != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(structErr, &fieldErrs) {
			for _, fieldErr := range fieldErrs {
				err = append(err, fmt.Sprintf("%v fails '%v' (value %v)", fieldErr.Namespace(), fieldErr.ActualTag(), fieldErr.Value()))
			}
		} else {
			err = append(err, structErr.Error())
		}
	}
	if strings.HasSuffix(config.OutPath(), "/") {
		err = append(err, "OutPath should not end with '/'")
	}
	if config.Watch() != nil {
		for _, spec := range []string{config.Watch().TickEvery(), config.Watch().MineEvery(), config.Watch().ConnectivityEvery()} {
			if _, parseErr := cron.ParseStandard(spec); parseErr != nil {
				err = append(err, fmt.Sprintf("schedule %q is invalid: %v", spec, parseErr))
			}
		}
	}

	if len(err) > 0 {
		var errMessage string = "There are configuration errors:\n"
		for _, e := range err {
			errMessage += e + "\n"
		}
		return errors.New(errMessage)
	}
	return nil
}
