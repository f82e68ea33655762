package core

import (
	"context"
	"path/filepath"
	"sync"

	"vibranium/internal/types"
)

type memoryManifest struct {
	manifests map[string]types.ProjectManifest
	saves     int
}

func newMemoryManifest() *memoryManifest {
	return &memoryManifest{manifests: map[string]types.ProjectManifest{}}
}

func (m *memoryManifest) Exists(root string) bool {
	_, ok := m.manifests[root]
	return ok
}

func (m *memoryManifest) Load(root string) (types.ProjectManifest, error) {
	manifest, ok := m.manifests[root]
	if !ok {
		return types.ProjectManifest{}, types.NewNotInitializedError(root)
	}
	deps := map[string]string{}
	for k, v := range manifest.Dependencies {
		deps[k] = v
	}
	manifest.Dependencies = deps
	return manifest, nil
}

func (m *memoryManifest) Save(root string, manifest types.ProjectManifest) error {
	m.manifests[root] = manifest
	m.saves++
	return nil
}

func (m *memoryManifest) SetDependency(root string, name string, version string) error {
	manifest, err := m.Load(root)
	if err != nil {
		return err
	}
	manifest.Dependencies[name] = version
	return m.Save(root, manifest)
}

func (m *memoryManifest) RemoveDependency(root string, name string) error {
	manifest, err := m.Load(root)
	if err != nil {
		return err
	}
	delete(manifest.Dependencies, name)
	return m.Save(root, manifest)
}

type memoryLedger struct {
	present bool
	records types.Ledger
	writes  int
}

func newMemoryLedger(records ...types.InstalledPackageRecord) *memoryLedger {
	ledger := &memoryLedger{present: true, records: types.Ledger{}}
	for _, record := range records {
		ledger.records[record.Name] = record
	}
	return ledger
}

func (l *memoryLedger) Load(root string) (types.Ledger, error) {
	if !l.present {
		return nil, types.NewLedgerMissingError(filepath.Join(root, types.LedgerDirName))
	}
	out := types.Ledger{}
	for k, v := range l.records {
		out[k] = v
	}
	return out, nil
}

func (l *memoryLedger) Get(root string, name string) (types.InstalledPackageRecord, bool, error) {
	ledger, err := l.Load(root)
	if err != nil {
		return types.InstalledPackageRecord{}, false, err
	}
	record, ok := ledger[name]
	return record, ok, nil
}

func (l *memoryLedger) Upsert(_ string, record types.InstalledPackageRecord) error {
	l.records[record.Name] = record
	l.writes++
	return nil
}

func (l *memoryLedger) Delete(_ string, name string) error {
	delete(l.records, name)
	l.writes++
	return nil
}

type registryCall struct {
	Name    string
	Version string
}

type fakeRegistry struct {
	packages map[string]string
	missing  map[string]bool
	calls    []registryCall
}

func (r *fakeRegistry) Fetch(_ context.Context, name string, version string) ([]byte, error) {
	r.calls = append(r.calls, registryCall{Name: name, Version: version})
	key := name + "==" + version
	if r.missing[key] {
		return nil, types.NewPackageMissingError(name, version)
	}
	content, ok := r.packages[key]
	if !ok {
		return nil, types.NewPackageNotFoundError(name, version)
	}
	return []byte(content), nil
}

type memoryStore struct {
	files   map[string]string
	removed []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{files: map[string]string{}}
}

func (s *memoryStore) Write(_ string, name string, content []byte) (string, error) {
	path := filepath.Join(types.LedgerDirName, name+types.SourceExtension)
	s.files[path] = string(content)
	return path, nil
}

func (s *memoryStore) Remove(_ string, storagePath string) error {
	delete(s.files, storagePath)
	s.removed = append(s.removed, storagePath)
	return nil
}

type countingLock struct {
	mu       sync.Mutex
	acquired int
	released int
}

func (l *countingLock) Acquire(string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.acquired++
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.released++
	}, nil
}
