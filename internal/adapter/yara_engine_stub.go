//go:build !yara

package adapter

import "errors"

// ErrYaraUnavailable is returned when the yara engine is requested from a
// binary built without the yara tag.
var ErrYaraUnavailable = errors.New("built without yara support (rebuild with -tags yara)")

func newYaraRuleEngine() (RuleEngine, error) {
	return nil, ErrYaraUnavailable
}
