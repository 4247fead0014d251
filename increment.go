package bump

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// DefaultSeparators are the characters allowed between an identifier and its
// numeric suffix. The first one is used when a fresh counter is seeded.
const DefaultSeparators = ".-"

// Incrementer computes the next value of a pre-release or build identifier
type Incrementer struct {
	separators string
}

var defaultIncrementer = &Incrementer{separators: DefaultSeparators}

// NewIncrementer returns an Incrementer using the given separator characters.
// Separators must be ASCII punctuation; letters and digits would be
// indistinguishable from identifier text.
func NewIncrementer(separators string) (*Incrementer, error) {
	if separators == "" {
		return nil, errors.New("at least one separator is required")
	}
	for i := 0; i < len(separators); i++ {
		c := separators[i]
		if c >= 0x80 || isASCIIDigit(c) || isASCIILetter(c) {
			return nil, fmt.Errorf("invalid separator %q", c)
		}
	}
	return &Incrementer{separators: separators}, nil
}

// Separators returns the separator characters in priority order
func (inc *Incrementer) Separators() string {
	return inc.separators
}

// Increment computes the next identifier using the default separators
func Increment(current, tag string) (string, error) {
	return defaultIncrementer.Increment(current, tag)
}

// Classify reports how tag relates to the current identifier
func (inc *Incrementer) Classify(current, tag string) TagRelation {
	switch {
	case tag == "":
		return TagEmpty
	case tag == current:
		return TagEqualsCurrent
	case strings.HasPrefix(current, tag) && inc.isSeparator(current[len(tag)]):
		return TagIsPrefixOfCurrent
	default:
		return TagUnrelated
	}
}

// Increment returns the identifier that follows current. An empty tag reuses
// current; a tag equal to current, or one that current extends with a
// separator, continues its counter; any other tag replaces current and is
// seeded with a counter unless it already ends in a digit.
func (inc *Incrementer) Increment(current, tag string) (string, error) {
	relation := inc.Classify(current, tag)

	log.WithFields(log.Fields{
		"current":  current,
		"tag":      tag,
		"relation": relation,
	}).Debug("incrementing identifier")

	switch relation {
	case TagEmpty, TagEqualsCurrent:
		if current == "" {
			return "", &InputError{}
		}
		return inc.incrementCurrent(current)
	case TagIsPrefixOfCurrent:
		next, err := inc.incrementSuffix(current[len(tag):])
		if err != nil {
			return "", err
		}
		return tag + next, nil
	default:
		if isASCIIDigit(tag[len(tag)-1]) {
			return tag, nil
		}
		return inc.seed(tag), nil
	}
}

// incrementCurrent bumps the counter after the last separator in current.
// Without a separator the whole identifier is tried as a number, and failing
// that a counter is seeded.
func (inc *Incrementer) incrementCurrent(current string) (string, error) {
	if idx := strings.LastIndexAny(current, inc.separators); idx >= 0 {
		log.WithFields(log.Fields{
			"prefix": current[:idx],
			"suffix": current[idx:],
		}).Debug("split identifier at separator")

		next, err := inc.incrementSuffix(current[idx:])
		if err != nil {
			return "", err
		}
		return current[:idx] + next, nil
	}

	next, err := inc.incrementSuffix(current)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) && !errors.Is(err, strconv.ErrRange) {
			return inc.seed(current), nil
		}
		return "", err
	}
	return next, nil
}

// incrementSuffix increments "<sep><digits>" or "<digits>", keeping the
// separator (or its absence). Any other text gets a fresh counter.
func (inc *Incrementer) incrementSuffix(suffix string) (string, error) {
	if suffix == "" {
		return inc.seed(""), nil
	}

	first := suffix[0]
	switch {
	case inc.isSeparator(first):
		next, err := nextNumber(suffix[1:])
		if err != nil {
			return "", &ParseError{Input: suffix, Err: err}
		}
		return string(first) + next, nil
	case isASCIIDigit(first):
		next, err := nextNumber(suffix)
		if err != nil {
			return "", &ParseError{Input: suffix, Err: err}
		}
		return next, nil
	default:
		return inc.seed(suffix), nil
	}
}

func (inc *Incrementer) seed(prefix string) string {
	return prefix + inc.separators[:1] + "1"
}

func (inc *Incrementer) isSeparator(c byte) bool {
	return strings.IndexByte(inc.separators, c) >= 0
}

func nextNumber(s string) (string, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return "", err
	}
	if n == math.MaxUint64 {
		return "", strconv.ErrRange
	}
	return strconv.FormatUint(n+1, 10), nil
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
