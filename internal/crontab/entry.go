// Package crontab parses the three legacy crontab dialects (user, system,
// anacron) plus environment-variable assignment lines into typed entries.
package crontab

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cronkit/systemd-crontab-generator/internal/schedule"
)

// Dialect selects which job-line shape a Reader expects: User entries carry
// only a schedule and command, System entries insert a user:group:class
// field before the command, and Anacron entries use period/delay/jobid/cmd.
type Dialect int

const (
	User Dialect = iota
	System
	Anacron
)

// EnvVar is a NAME=VALUE assignment line.
type EnvVar struct {
	Name  string
	Value string
}

// UserInfo is the colon-separated user:group:class field of a system
// crontab line. Group and Class are empty when not present; Class is
// carried through parsing but has no systemd equivalent and is never
// rendered by the unit emitter.
type UserInfo struct {
	Name  string
	Group string
	Class string
}

// UserEntry is a line from a per-user crontab: a schedule and a command.
type UserEntry struct {
	Sched schedule.Schedule
	Cmd   string
}

// SystemEntry is a line from /etc/crontab or /etc/cron.d/*: a schedule, the
// user to run as, and a command.
type SystemEntry struct {
	Sched schedule.Schedule
	User  UserInfo
	Cmd   string
}

// AnacronEntry is a line from /etc/anacrontab: a period, a delay in
// minutes, an opaque job id, and a command.
type AnacronEntry struct {
	Period schedule.Period
	Delay  int // minutes
	JobID  string
	Cmd    string
}

// Kind discriminates which field of Entry is populated.
type Kind int

const (
	KindEnvVar Kind = iota
	KindUser
	KindSystem
	KindAnacron
)

// Entry is a parsed crontab line: exactly one of EnvVar, UserEntry,
// SystemEntry or AnacronEntry is set, matching Kind.
type Entry struct {
	Kind    Kind
	EnvVar  *EnvVar
	User    *UserEntry
	System  *SystemEntry
	Anacron *AnacronEntry
}

// Period returns the entry's Period when its schedule is a named/numeric
// recurrence rather than a 5-field calendar, and nil otherwise. Anacron
// entries always carry a Period.
func (e Entry) Period() *schedule.Period {
	switch e.Kind {
	case KindAnacron:
		return &e.Anacron.Period
	case KindUser:
		return e.User.Sched.Period
	case KindSystem:
		return e.System.Sched.Period
	}
	return nil
}

// Calendar returns the entry's Calendar when its schedule is a 5-field
// calendar rather than a Period, and nil otherwise. Anacron entries never
// carry a Calendar.
func (e Entry) Calendar() *schedule.Calendar {
	switch e.Kind {
	case KindUser:
		return e.User.Sched.Calendar
	case KindSystem:
		return e.System.Sched.Calendar
	}
	return nil
}

// Command returns the entry's shell command, or "" for an EnvVar entry.
func (e Entry) Command() string {
	switch e.Kind {
	case KindUser:
		return e.User.Cmd
	case KindSystem:
		return e.System.Cmd
	case KindAnacron:
		return e.Anacron.Cmd
	}
	return ""
}

// UserName returns the user the job should run as, for System entries.
// User and Anacron entries have no user field of their own; the caller
// falls back to the source file's owner per §4.7 step 1.
func (e Entry) UserName() (string, bool) {
	if e.Kind == KindSystem {
		return e.System.User.Name, true
	}
	return "", false
}

// Group returns the system entry's group field, if any.
func (e Entry) Group() (string, bool) {
	if e.Kind == KindSystem && e.System.User.Group != "" {
		return e.System.User.Group, true
	}
	return "", false
}

// String renders the entry approximately as it appeared in the source
// file, for log messages and the "[Cron] \"<entry>\"" unit description.
func (e Entry) String() string {
	switch e.Kind {
	case KindEnvVar:
		return fmt.Sprintf("%s=%s", e.EnvVar.Name, e.EnvVar.Value)
	case KindUser:
		return fmt.Sprintf("%s %s", e.User.Sched.String(), e.User.Cmd)
	case KindSystem:
		return fmt.Sprintf("%s %s %s", e.System.Sched.String(), formatUserInfo(e.System.User), e.System.Cmd)
	case KindAnacron:
		p := e.Anacron.Period
		return fmt.Sprintf("%s %d %s %s", schedule.Schedule{Period: &p}.String(), e.Anacron.Delay, e.Anacron.JobID, e.Anacron.Cmd)
	}
	return ""
}

func formatUserInfo(u UserInfo) string {
	s := u.Name
	if u.Group != "" {
		s += ":" + u.Group
	}
	if u.Class != "" {
		s += ":" + u.Class
	}
	return s
}

// Parse error kinds, named after the field they concern rather than a
// wrapped type, per the grammar in spec §4.3/§7.
var (
	ErrMissingEnvVarName  = errors.New("missing environment variable name")
	ErrMissingEnvVarValue = errors.New("missing environment variable value")
	ErrInvalidEnvVarName  = errors.New("invalid environment variable name")
	ErrMissingPeriod      = errors.New("missing period")
	ErrMissingDelay       = errors.New("missing delay")
	ErrMissingJobID       = errors.New("missing jobid")
	ErrInvalidUser        = errors.New("invalid user")
)

// ParseEnvVar recognizes a NAME=VALUE line. NAME is the text up to the
// first '=' with trailing spaces/tabs trimmed; VALUE is the remainder with
// leading spaces/tabs trimmed and, if its first and last characters match
// and are one of ' or ", that single pair of quotes stripped.
func ParseEnvVar(line string) (EnvVar, error) {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return EnvVar{}, ErrMissingEnvVarValue
	}

	name := strings.TrimRight(line[:idx], " \t")
	if name == "" {
		return EnvVar{}, ErrMissingEnvVarName
	}
	if strings.ContainsAny(name, " \t") {
		return EnvVar{}, ErrInvalidEnvVarName
	}

	value := strings.TrimLeft(line[idx+1:], " \t")
	if len(value) > 1 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '\'' || first == '"') {
			value = value[1 : len(value)-1]
		}
	}

	return EnvVar{Name: name, Value: value}, nil
}

func fields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '\t' })
}

// ParseUserEntry parses a "min hr dom mon dow cmd…" line.
func ParseUserEntry(line string) (UserEntry, error) {
	toks := fields(line)
	sched, rest, err := schedule.Parse(toks)
	if err != nil {
		return UserEntry{}, err
	}
	return UserEntry{Sched: sched, Cmd: strings.Join(rest, " ")}, nil
}

// ParseSystemEntry parses a "min hr dom mon dow user[:group[:class]] cmd…" line.
func ParseSystemEntry(line string) (SystemEntry, error) {
	toks := fields(line)
	sched, rest, err := schedule.Parse(toks)
	if err != nil {
		return SystemEntry{}, err
	}
	if len(rest) == 0 {
		return SystemEntry{}, ErrInvalidUser
	}
	user := parseUserInfo(rest[0])
	return SystemEntry{Sched: sched, User: user, Cmd: strings.Join(rest[1:], " ")}, nil
}

func parseUserInfo(s string) UserInfo {
	parts := strings.SplitN(s, ":", 3)
	u := UserInfo{Name: parts[0]}
	if len(parts) > 1 {
		u.Group = parts[1]
	}
	if len(parts) > 2 {
		u.Class = parts[2]
	}
	return u
}

// ParseAnacronEntry parses a "period delay jobid cmd…" line.
func ParseAnacronEntry(line string) (AnacronEntry, error) {
	toks := fields(line)
	if len(toks) == 0 {
		return AnacronEntry{}, ErrMissingPeriod
	}
	period, err := schedule.ParsePeriod(toks[0])
	if err != nil {
		return AnacronEntry{}, err
	}
	if len(toks) < 2 {
		return AnacronEntry{}, ErrMissingDelay
	}
	delay, err := strconv.Atoi(toks[1])
	if err != nil || delay < 0 {
		return AnacronEntry{}, fmt.Errorf("invalid delay %q: %w", toks[1], err)
	}
	if len(toks) < 3 {
		return AnacronEntry{}, ErrMissingJobID
	}
	return AnacronEntry{Period: period, Delay: delay, JobID: toks[2], Cmd: strings.Join(toks[3:], " ")}, nil
}

// ParseLine classifies and parses one non-blank, non-comment line per the
// active dialect: it is first tried as an EnvVar, falling back to the
// dialect's job shape on failure.
func ParseLine(d Dialect, line string) (Entry, error) {
	if ev, err := ParseEnvVar(line); err == nil {
		return Entry{Kind: KindEnvVar, EnvVar: &ev}, nil
	}

	switch d {
	case User:
		ue, err := ParseUserEntry(line)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Kind: KindUser, User: &ue}, nil
	case System:
		se, err := ParseSystemEntry(line)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Kind: KindSystem, System: &se}, nil
	case Anacron:
		ae, err := ParseAnacronEntry(line)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Kind: KindAnacron, Anacron: &ae}, nil
	}
	return Entry{}, fmt.Errorf("unknown dialect %d", d)
}
