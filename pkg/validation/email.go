package validation

import (
	"strings"

	"github.com/asaskevich/govalidator"
)

// IsEmail reports whether value is an address of the form local@domain where
// the domain has at least one dot and no empty labels.
func IsEmail(value string) bool {
	if !govalidator.IsEmail(value) {
		return false
	}
	at := strings.LastIndex(value, "@")
	if at <= 0 || at == len(value)-1 {
		return false
	}
	domain := value[at+1:]
	if !strings.Contains(domain, ".") {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return false
		}
	}
	return true
}
