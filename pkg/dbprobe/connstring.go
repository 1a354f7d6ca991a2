package dbprobe

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	defaultPort    = 5432
	defaultSSLMode = "disable"
)

// ConnSettings are the parts of a "key=value;key=value" connection string.
type ConnSettings struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	Options  map[string]string // libpq parameters such as connect_timeout
	Ignored  []string          // keys with no libpq equivalent
}

var keyAliases = map[string]string{
	"host":     "host",
	"server":   "host",
	"port":     "port",
	"username": "user",
	"user":     "user",
	"user id":  "user",
	"userid":   "user",
	"password": "password",
	"database": "database",
	"db":       "database",
	"dbname":   "database",
	"sslmode":  "sslmode",
	"ssl mode": "sslmode",
}

// optionAliases maps keys onto libpq parameters that are passed through.
var optionAliases = map[string]string{
	"timeout":          "connect_timeout",
	"connect_timeout":  "connect_timeout",
	"application name": "application_name",
	"application_name": "application_name",
	"search path":      "search_path",
	"search_path":      "search_path",
}

// ParseConnString parses a semicolon separated connection string such as
// "host=localhost;port=5432;username=app;password=secret;database=test".
// Keys are case-insensitive. Empty segments are ignored.
func ParseConnString(s string) (ConnSettings, error) {
	cs := ConnSettings{Port: defaultPort, SSLMode: defaultSSLMode}

	for _, segment := range strings.Split(s, ";") {
		if strings.TrimSpace(segment) == "" {
			continue
		}

		key, value, ok := strings.Cut(segment, "=")
		if !ok {
			return ConnSettings{}, fmt.Errorf("invalid connection string segment %q: missing '='", strings.TrimSpace(segment))
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key == "" {
			return ConnSettings{}, fmt.Errorf("invalid connection string segment %q: empty key", strings.TrimSpace(segment))
		}

		switch keyAliases[key] {
		case "host":
			cs.Host = value
		case "port":
			port, err := strconv.Atoi(value)
			if err != nil || port <= 0 || port > 65535 {
				return ConnSettings{}, fmt.Errorf("invalid port %q", value)
			}
			cs.Port = port
		case "user":
			cs.User = value
		case "password":
			cs.Password = value
		case "database":
			cs.Database = value
		case "sslmode":
			cs.SSLMode = value
		default:
			opt, ok := optionAliases[key]
			if !ok {
				cs.Ignored = append(cs.Ignored, key)
				continue
			}
			if cs.Options == nil {
				cs.Options = make(map[string]string)
			}
			cs.Options[opt] = value
		}
	}

	if cs.Host == "" {
		return ConnSettings{}, fmt.Errorf("connection string has no host")
	}

	return cs, nil
}

// DSN renders the settings as a lib/pq keyword/value connection string.
func (cs ConnSettings) DSN() string {
	return cs.render(cs.Password)
}

// Redacted renders the DSN with the password masked, for logging.
func (cs ConnSettings) Redacted() string {
	if cs.Password == "" {
		return cs.render("")
	}
	return cs.render("****")
}

func (cs ConnSettings) render(password string) string {
	var parts []string
	add := func(k, v string) {
		parts = append(parts, k+"="+quoteValue(v))
	}

	add("host", cs.Host)
	add("port", strconv.Itoa(cs.Port))
	if cs.User != "" {
		add("user", cs.User)
	}
	if password != "" {
		add("password", password)
	}
	if cs.Database != "" {
		add("dbname", cs.Database)
	}
	if cs.SSLMode != "" {
		add("sslmode", cs.SSLMode)
	}

	keys := make([]string, 0, len(cs.Options))
	for k := range cs.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		add(k, cs.Options[k])
	}

	return strings.Join(parts, " ")
}

// quoteValue quotes a value when lib/pq would otherwise misread it.
func quoteValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
