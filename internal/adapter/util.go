package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
)

const (
	locationRemote   = "Remote"
	locationRemoteRU = "Удалённо"
)

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// salaryRange renders provider salary bounds the way Russian boards quote
// them: "A-B CUR", "от A CUR" or "до B CUR". Zero bounds are absent.
func salaryRange(from, to int64, currency string) string {
	switch {
	case from > 0 && to > 0:
		return fmt.Sprintf("%s-%s %s", humanize.Comma(from), humanize.Comma(to), currency)
	case from > 0:
		return fmt.Sprintf("от %s %s", humanize.Comma(from), currency)
	case to > 0:
		return fmt.Sprintf("до %s %s", humanize.Comma(to), currency)
	}
	return ""
}

// flexStrings accepts either a JSON string or an array of strings.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*f = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*f = nil
	} else {
		*f = flexStrings{s}
	}
	return nil
}

// flexNumber accepts a JSON number, a numeric string or an empty string.
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = flexNumber(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexNumber(v)
	return nil
}

// credentialNotice logs a missing credential as a warning the first time and
// at debug level afterwards.
type credentialNotice struct {
	once sync.Once
}

func (n *credentialNotice) log(logger *slog.Logger, source string, keys ...string) {
	warned := false
	n.once.Do(func() {
		warned = true
		logger.Warn("credentials not configured, skipping source", "source", source, "missing", keys)
	})
	if !warned {
		logger.Debug("credentials not configured, skipping source", "source", source)
	}
}
