package pip

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Client issues pip commands through one Python interpreter.
type Client struct {
	Python string
	Runner Runner
}

// NewClient returns a Client for python, using os/exec when runner is nil.
func NewClient(python string, runner Runner) *Client {
	if python == "" {
		python = "python3"
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Client{Python: python, Runner: runner}
}

func (c *Client) run(ctx context.Context, args ...string) (*Result, error) {
	return c.Runner.Run(ctx, c.Python, args...)
}

func (c *Client) check(res *Result, args []string) error {
	if res.ExitCode != 0 {
		return &CommandError{Args: append([]string{c.Python}, args...), ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}

// Show returns the installed version of pkg. A package pip does not know
// about is reported as installed == false with a nil error.
func (c *Client) Show(ctx context.Context, pkg string) (version string, installed bool, err error) {
	res, err := c.run(ctx, "-m", "pip", "show", pkg)
	if err != nil {
		return "", false, err
	}
	if res.ExitCode != 0 {
		return "", false, nil
	}
	sc := bufio.NewScanner(strings.NewReader(res.Stdout))
	for sc.Scan() {
		if v, ok := strings.CutPrefix(sc.Text(), "Version: "); ok {
			return strings.TrimSpace(v), true, nil
		}
	}
	return "", false, fmt.Errorf("pip show %s: no Version line in output", pkg)
}

// Uninstall removes pkg. removed is false when pkg was not installed.
func (c *Client) Uninstall(ctx context.Context, pkg string) (removed bool, err error) {
	args := []string{"-m", "pip", "uninstall", "-y", pkg}
	res, err := c.run(ctx, args...)
	if err != nil {
		return false, err
	}
	if err := c.check(res, args); err != nil {
		return false, err
	}
	return strings.Contains(res.Stdout, "Successfully uninstalled"), nil
}

// Install installs the requirement spec, e.g. "openbb[all]==4.4.0".
func (c *Client) Install(ctx context.Context, spec string, noCache bool) error {
	args := []string{"-m", "pip", "install"}
	if noCache {
		args = append(args, "--no-cache-dir")
	}
	args = append(args, spec)
	res, err := c.run(ctx, args...)
	if err != nil {
		return err
	}
	return c.check(res, args)
}

// Script runs Python source in a fresh interpreter and returns its stdout.
func (c *Client) Script(ctx context.Context, src string) (string, error) {
	args := []string{"-c", src}
	res, err := c.run(ctx, args...)
	if err != nil {
		return "", err
	}
	if err := c.check(res, []string{"-c", "<script>"}); err != nil {
		return res.Stdout, err
	}
	return res.Stdout, nil
}

// Version is a Python interpreter version.
type Version struct {
	Major, Minor, Patch int
}

func (v Version) String() string { return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch) }

// AtLeast reports whether v >= major.minor.
func (v Version) AtLeast(major, minor int) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

// PythonVersion asks the interpreter for its version.
func (c *Client) PythonVersion(ctx context.Context) (Version, error) {
	args := []string{"--version"}
	res, err := c.run(ctx, args...)
	if err != nil {
		return Version{}, err
	}
	if err := c.check(res, args); err != nil {
		return Version{}, err
	}
	// Python 2 printed the version on stderr.
	out := strings.TrimSpace(res.Stdout + " " + res.Stderr)
	return ParseVersion(out)
}

// ParseVersion parses "Python 3.11.4" or "3.11.4" style text.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "Python"))
	if f := strings.Fields(s); len(f) > 0 {
		s = f[0]
	}
	parts := strings.SplitN(s, ".", 3)
	var nums [3]int
	for i, p := range parts {
		// tolerate suffixes like "0rc1" or "12+"
		end := 0
		for end < len(p) && p[end] >= '0' && p[end] <= '9' {
			end++
		}
		n, err := strconv.Atoi(p[:end])
		if err != nil {
			return Version{}, fmt.Errorf("cannot parse python version %q", s)
		}
		nums[i] = n
	}
	if len(parts) < 2 {
		return Version{}, fmt.Errorf("cannot parse python version %q", s)
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}
