package upload

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/specialistvlad/clovergrid/internal/ctxlog"
	"github.com/specialistvlad/clovergrid/internal/registry"
	"github.com/specialistvlad/clovergrid/internal/task"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	// Client is used for every upload. Nil means a default client.
	Client *http.Client
}

// Input defines the arguments for the 'arguments' HCL block.
type Input struct {
	SourcePath  string `arg:"source_path"`
	UploadURL   string `arg:"upload_url"`
	ContentType string `arg:"content_type,optional"`
}

type action struct {
	client *http.Client
	env    *registry.Env
	input  *Input
}

func (a *action) ActionName() string {
	return "upload"
}

// Execute uploads a file to a pre-signed URL with a single PUT.
func (a *action) Execute(ctx context.Context, _ *task.Task) error {
	logger := ctxlog.FromContext(ctx)
	path := a.env.Project.Path(a.input.SourcePath)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open source file '%s': %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to get file stats for '%s': %w", path, err)
	}
	if stat.IsDir() {
		return fmt.Errorf("source '%s' is a directory", path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, a.input.UploadURL, file)
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}

	contentType := a.input.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(path))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = stat.Size()

	logger.Info("Uploading file", "source", path, "size", stat.Size(), "contentType", contentType)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upload failed with status: %s", resp.Status)
	}

	logger.Info("Successfully uploaded file", "status", resp.Status)
	return nil
}

// Register registers the upload task type.
func (m *Module) Register(r *registry.Registry) {
	client := m.Client
	if client == nil {
		client = &http.Client{}
	}
	r.RegisterTaskType("upload", &registry.TaskType{
		Kind:        task.KindPublish,
		Description: "Uploads a file to a pre-signed URL.",
		NewInput:    func() any { return new(Input) },
		NewAction: func(env *registry.Env, input any) (task.Action, error) {
			in := input.(*Input)
			if in.UploadURL == "" {
				return nil, fmt.Errorf("upload_url must not be empty")
			}
			return &action{client: client, env: env, input: in}, nil
		},
	})
}
