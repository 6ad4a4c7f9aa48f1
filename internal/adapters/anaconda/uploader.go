package anaconda

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"

	"go.trai.ch/zerr"
)

// Upload publishes a local artifact under the target user via the uploader
// CLI. The command line carries the auth token, so failures are reported
// without the command's arguments.
func (c *Client) Upload(ctx context.Context, user, artifactPath, token string) error {
	args := []string{}
	if token != "" {
		args = append(args, "--token", token)
	}
	args = append(args, "upload", "--user", user, "--force", artifactPath)

	cmd := exec.CommandContext(ctx, c.uploader, args...) //nolint:gosec // uploader is operator configuration
	cmd.Stdout = nil
	cmd.Stderr = nil

	c.logger.Info("uploading artifact", "user", user, "artifact", filepath.Base(artifactPath))

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		// Deliberately not wrapping err: exec errors repeat the argv.
		uploadErr := zerr.With(zerr.New("upload failed"), "user", user)
		uploadErr = zerr.With(uploadErr, "artifact", filepath.Base(artifactPath))
		return zerr.With(uploadErr, "exit_code", exitCode)
	}
	return nil
}
