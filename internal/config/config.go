package config

import (
	"errors"
	"fmt"
	"github.com/alvinbaena/pwd-autopsy/internal/util"
	"github.com/alvinbaena/pwd-autopsy/pkg/hibp"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"reflect"
	"strings"
)

type Config struct {
	Port         string `mapstructure:"PORT" validate:"required,numeric"`
	SelfTLS      bool   `mapstructure:"SELF_TLS" validate:"required_without_all=TLSCert TLSKey"`
	TLSCert      string `mapstructure:"TLS_CERT" validate:"required_if=SelfTLS false,required_with=TLSKey"`
	TLSKey       string `mapstructure:"TLS_KEY" validate:"required_if=SelfTLS false,required_with=TLSCert"`
	Debug        bool   `mapstructure:"DEBUG"`
	HibpURL      string `mapstructure:"HIBP_URL" validate:"required,url"`
	BreachLookup bool   `mapstructure:"BREACH_LOOKUP"`
	CacheSize    int64  `mapstructure:"CACHE_SIZE" validate:"gte=0"`
}

// flagKeys maps the serve command flags to the configuration keys they override.
var flagKeys = map[string]string{
	"port":     "PORT",
	"self-tls": "SELF_TLS",
	"tls-cert": "TLS_CERT",
	"tls-key":  "TLS_KEY",
	"hibp-url": "HIBP_URL",
	"breaches": "BREACH_LOOKUP",
}

func bindEnvs(v *viper.Viper, iface interface{}, parts ...string) {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)
	for i := 0; i < ift.NumField(); i++ {
		fv := ifv.Field(i)
		t := ift.Field(i)
		tv, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			continue
		}
		switch fv.Kind() {
		case reflect.Struct:
			bindEnvs(v, fv.Interface(), append(parts, tv)...)
		default:
			_ = v.BindEnv(strings.Join(append(parts, tv), "."))
		}
	}
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "required_without_all":
		return fmt.Sprintf("This field is required if fields [%s] are missing", util.ToScreamingSnakeCase(fe.Param()))
	case "required_if":
		return fmt.Sprintf("This field is required if %s", util.ToScreamingSnakeCase(fe.Param()))
	case "required_with":
		return fmt.Sprintf("This field requires the presence of %s", util.ToScreamingSnakeCase(fe.Param()))
	case "numeric":
		return "This field must be a number"
	case "url":
		return "This field must be a URL"
	}
	return fe.Error() // default error
}

// Load reads the server configuration from the environment. Flags in flags that were explicitly set
// take precedence over the environment, flags may be nil.
func Load(flags *pflag.FlagSet) (config Config, err error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetDefault("PORT", "3100")
	v.SetDefault("HIBP_URL", hibp.DefaultBaseURL)
	v.SetDefault("BREACH_LOOKUP", true)
	v.SetDefault("CACHE_SIZE", hibp.DefaultCacheSize)

	// This is to not require a config file to unmarshal Envs in a struct
	// https://github.com/spf13/viper/issues/188#issuecomment-399884438
	config = Config{}
	bindEnvs(v, config)

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err = v.BindPFlag(key, f); err != nil {
					return
				}
			}
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("error reading configuration: %w", err)
	}

	if err = validator.New().Struct(&config); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			var msgs []string
			for _, fe := range ve {
				msgs = append(msgs, fmt.Sprintf("%s: %s", util.ToScreamingSnakeCase(fe.Field()), msgForTag(fe)))
			}

			return config, errors.New(strings.Join(msgs, ". "))
		}
		return config, fmt.Errorf("error validating configuration from environment: %w", err)
	}

	return config, nil
}
