package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/khyahahati/ai-doc-builder/internal/domain"
	"github.com/khyahahati/ai-doc-builder/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName          = "config"
	configType          = "toml"
	workspacePathKey    = "workspace.path"
	workspaceFileMode   = 0o600
	workspaceDirMode    = 0o700
	workspaceConfigDir  = ".docbuilder"
	workspaceConfigFile = "workspace.toml"
	tempFilePattern     = ".workspace-*.toml.tmp"
)

// Repository persists the draft outline and the active project selection in
// a single TOML file so an editing session survives across one-shot CLI
// invocations.
type Repository struct {
	workspacePath string
	mu            *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var (
	_ ports.WorkspaceRepository = (*Repository)(nil)
	_ ports.SessionRepository   = (*Repository)(nil)
)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, workspaceConfigDir, workspaceConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, workspaceConfigDir))
	cfg.SetDefault(workspacePathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	workspacePath := cfg.GetString(workspacePathKey)
	if workspacePath == "" {
		return nil, errors.New("workspace path is empty")
	}
	workspacePath, err = normalizeWorkspacePath(workspacePath)
	if err != nil {
		return nil, err
	}

	return &Repository{workspacePath: workspacePath, mu: lockForPath(workspacePath)}, nil
}

func (r *Repository) Load(ctx context.Context, projectID domain.ProjectID) ([]domain.Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	for _, workspace := range file.Workspaces {
		if workspace.ProjectID == string(projectID) {
			sections := make([]domain.Section, 0, len(workspace.Sections))
			for _, entry := range workspace.Sections {
				sections = append(sections, fromSchema(entry))
			}
			return sections, nil
		}
	}

	// A project without a stored workspace starts with an empty outline.
	return nil, nil
}

func (r *Repository) Save(ctx context.Context, projectID domain.ProjectID, sections []domain.Section) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	encoded := workspaceSchema{ProjectID: string(projectID)}
	for _, section := range sections {
		encoded.Sections = append(encoded.Sections, toSchema(section))
	}

	updated := false
	for i := range file.Workspaces {
		if file.Workspaces[i].ProjectID == encoded.ProjectID {
			file.Workspaces[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Workspaces = append(file.Workspaces, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) ActiveProject(ctx context.Context) (domain.ProjectID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return "", err
	}

	return domain.ProjectID(file.ActiveProject), nil
}

func (r *Repository) SetActiveProject(ctx context.Context, id domain.ProjectID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()
	file.ActiveProject = string(id)

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.workspacePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read workspace file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode workspace file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode workspace file: %w", err)
	}

	dir := filepath.Dir(r.workspacePath)
	if err := os.MkdirAll(dir, workspaceDirMode); err != nil {
		return fmt.Errorf("create workspace directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp workspace file: %w", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("write temp workspace file: %w", err)
	}
	if err := tempFile.Chmod(workspaceFileMode); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("chmod temp workspace file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("close temp workspace file: %w", err)
	}

	if err := os.Rename(tempPath, r.workspacePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("replace workspace file: %w", err)
	}

	return nil
}

func normalizeWorkspacePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve workspace path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
