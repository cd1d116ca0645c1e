package common_config

import (
	"errors"
	"io/fs"
	"net"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

// HostPort accepts "host:port" and ":port".
func HostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}
	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}
	return nil
}

// Brokers checks every entry of a broker list.
func Brokers(value interface{}) error {
	list, ok := value.([]string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a list of strings")
	}
	for _, b := range list {
		if err := HostPort(strings.TrimSpace(b)); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile loads path into v. A missing file is not an error: defaults and
// environment still apply.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
