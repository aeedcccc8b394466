package tools

import "context"

// Dalfox wraps the dalfox xss scanner in file mode
type Dalfox struct{}

func (d *Dalfox) Name() string { return "dalfox" }

func (d *Dalfox) Scan(ctx context.Context, targets []string) ([]string, error) {
	list, cleanup, err := TempFile(targets)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	cmd := &Command{Binary: "dalfox", Args: d.args(list)}
	return cmd.Run(ctx)
}

func (d *Dalfox) args(list string) []string {
	return []string{"file", list, "--silence", "--no-color", "--only-poc"}
}
