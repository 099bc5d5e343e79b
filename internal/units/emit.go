package units

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/cronkit/systemd-crontab-generator/internal/crontab"
	"github.com/cronkit/systemd-crontab-generator/internal/userdb"
)

const unitDocumentation = "man:systemd-crontab-generator(8)"

// Config carries the process-level knobs the emitter needs beyond the job
// itself: where the boot-delay helper lives, per spec §4.7 step 5.
type Config struct {
	LibDir  string
	Package string
}

// Emit writes the service and timer units for one job entry (plus a
// wrapper script when its command isn't already a regular file on disk), and links the timer into cron.target.wants. Per spec §4.7, any
// error here is per-job: the caller logs it and continues with the next
// entry.
func Emit(entry crontab.Entry, env map[string]string, path, dstdir string, cfg Config) error {
	if entry.Kind == crontab.KindEnvVar {
		return nil
	}

	cmd := entry.Command()
	if cmd == "" {
		return nil
	}

	ownerUID, err := fileOwnerUID(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	u, err := resolveUser(entry, ownerUID)
	if err != nil {
		return fmt.Errorf("unknown user for %s: %w", path, err)
	}

	params := ComputeParams(entry, env)
	canonical := CanonicalSchedule(entry, &params)

	fingerprint := Fingerprint(path, canonical, cmd)
	serviceName := "cron-" + fingerprint + ".service"
	timerName := "cron-" + fingerprint + ".timer"

	wantsDir := filepath.Join(dstdir, "cron.target.wants")
	if err := os.MkdirAll(wantsDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", wantsDir, err)
	}

	command, err := materializeCommand(cmd, dstdir, fingerprint, params.Shell)
	if err != nil {
		return fmt.Errorf("materializing command for %s: %w", path, err)
	}

	if err := writeServiceUnit(filepath.Join(dstdir, serviceName), serviceParams{
		Entry:      entry,
		Env:        env,
		SourcePath: path,
		Command:    command,
		User:       u,
		Group:      groupOf(entry),
		Params:     params,
		Canonical:  canonical,
		Cfg:        cfg,
	}); err != nil {
		return fmt.Errorf("writing %s: %w", serviceName, err)
	}

	if err := writeTimerUnit(filepath.Join(dstdir, timerName), timerParams{
		Entry:       entry,
		SourcePath:  path,
		ServiceName: serviceName,
		Params:      params,
		Canonical:   canonical,
	}); err != nil {
		return fmt.Errorf("writing %s: %w", timerName, err)
	}

	linkPath := filepath.Join(wantsDir, timerName)
	_ = os.Remove(linkPath)
	if err := os.Symlink(filepath.Join("..", timerName), linkPath); err != nil {
		return fmt.Errorf("linking %s: %w", linkPath, err)
	}

	return nil
}

func fileOwnerUID(path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, fmt.Errorf("cannot determine owner of %s", path)
	}
	return int(stat.Uid), nil
}

func resolveUser(entry crontab.Entry, ownerUID int) (userdb.Record, error) {
	if name, ok := entry.UserName(); ok {
		return userdb.ByName(name, ownerUID)
	}
	return userdb.ByUID(ownerUID)
}

func groupOf(entry crontab.Entry) string {
	g, _ := entry.Group()
	return g
}

func materializeCommand(cmd, dstdir, fingerprint, shell string) (string, error) {
	if info, err := os.Stat(cmd); err == nil && info.Mode().IsRegular() {
		return cmd, nil
	}

	scriptPath := filepath.Join(dstdir, "cron-"+fingerprint+".sh")
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "#!%s\n", shell)
	fmt.Fprintf(&buf, "%s\n", cmd)

	if err := os.WriteFile(scriptPath, buf.Bytes(), 0755); err != nil {
		return "", err
	}
	if err := os.Chmod(scriptPath, 0755); err != nil {
		return "", err
	}
	return scriptPath, nil
}

type serviceParams struct {
	Entry      crontab.Entry
	Env        map[string]string
	SourcePath string
	Command    string
	User       userdb.Record
	Group      string
	Params     Params
	Canonical  string
	Cfg        Config
}

func writeServiceUnit(path string, p serviceParams) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "[Unit]\n")
	fmt.Fprintf(&buf, "Description=[Cron] \"%s\"\n", p.Entry.String())
	fmt.Fprintf(&buf, "Documentation=%s\n", unitDocumentation)
	fmt.Fprintf(&buf, "RefuseManualStart=true\n")
	fmt.Fprintf(&buf, "RefuseManualStop=true\n")
	fmt.Fprintf(&buf, "SourcePath=%s\n", p.SourcePath)

	if _, ok := p.Env["MAILTO"]; ok {
		fmt.Fprintf(&buf, "OnFailure=cron-failure@%%i.service\n")
	}

	if p.User.UID != 0 {
		fmt.Fprintf(&buf, "Requires=systemd-user-sessions.service\n")
		if p.User.HomeDir != "" {
			fmt.Fprintf(&buf, "RequiresMountsFor=%s\n", p.User.HomeDir)
		}
	}

	fmt.Fprintf(&buf, "\n[Service]\n")
	fmt.Fprintf(&buf, "Type=oneshot\n")
	fmt.Fprintf(&buf, "IgnoreSIGPIPE=false\n")
	fmt.Fprintf(&buf, "ExecStart=%s\n", p.Command)

	if p.Canonical != "" && p.Params.Delay > 0 {
		fmt.Fprintf(&buf, "ExecStartPre=-%s/%s/boot-delay %d\n", p.Cfg.LibDir, p.Cfg.Package, p.Params.Delay)
	}

	if p.User.UID != 0 {
		fmt.Fprintf(&buf, "User=%s\n", p.User.Name)
	}
	if p.Group != "" {
		fmt.Fprintf(&buf, "Group=%s\n", p.Group)
	}
	if p.Params.Batch {
		fmt.Fprintf(&buf, "CPUSchedulingPolicy=idle\n")
		fmt.Fprintf(&buf, "IOSchedulingClass=idle\n")
	}

	for _, name := range crontab.SortedKeys(p.Env) {
		fmt.Fprintf(&buf, "Environment=\"%s=%s\"\n", name, p.Env[name])
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}

type timerParams struct {
	Entry       crontab.Entry
	SourcePath  string
	ServiceName string
	Params      Params
	Canonical   string
}

func writeTimerUnit(path string, p timerParams) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "[Unit]\n")
	fmt.Fprintf(&buf, "Description=[Timer] \"%s\"\n", p.Entry.String())
	fmt.Fprintf(&buf, "Documentation=%s\n", unitDocumentation)
	fmt.Fprintf(&buf, "PartOf=cron.target\n")
	fmt.Fprintf(&buf, "RefuseManualStart=true\n")
	fmt.Fprintf(&buf, "RefuseManualStop=true\n")
	fmt.Fprintf(&buf, "SourcePath=%s\n", p.SourcePath)

	fmt.Fprintf(&buf, "\n[Timer]\n")
	fmt.Fprintf(&buf, "Unit=%s\n", p.ServiceName)
	fmt.Fprintf(&buf, "Persistent=%t\n", p.Params.Persistent)

	if p.Canonical != "" {
		fmt.Fprintf(&buf, "OnCalendar=%s\n", p.Canonical)
	} else {
		fmt.Fprintf(&buf, "OnBootSec=%dm\n", p.Params.Delay)
	}

	if p.Params.RandomDelay != 1 {
		fmt.Fprintf(&buf, "AccuracySec=%dm\n", p.Params.RandomDelay)
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}
