package adapters

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/go-ini/ini"

	"vibranium/internal/ports"
	"vibranium/internal/shared"
	"vibranium/internal/types"
)

type LedgerFileAdapter struct{}

func NewLedgerFileAdapter() LedgerFileAdapter {
	return LedgerFileAdapter{}
}

func LedgerDir(root string) string {
	return filepath.Join(root, types.LedgerDirName)
}

func LedgerPath(root string) string {
	return filepath.Join(LedgerDir(root), types.LedgerFileName)
}

// Load returns the installed packages. An absent ledger file is an empty
// ledger; only an absent ledger directory is an error.
func (a LedgerFileAdapter) Load(root string) (types.Ledger, error) {
	dir := LedgerDir(root)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, types.NewLedgerMissingError(dir)
	}
	path := LedgerPath(root)
	ledger := types.Ledger{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ledger, nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse package directory " + path).
			WithCause(err)
	}
	for _, section := range file.Sections() {
		name := section.Name()
		// A package named DEFAULT is written as headerless keys and
		// reloads into the implicit default section.
		if name == ini.DefaultSection && !section.HasKey(types.LedgerKeyVersion) && !section.HasKey(types.LedgerKeyPath) {
			continue
		}
		ledger[name] = types.InstalledPackageRecord{
			Name:        name,
			Version:     section.Key(types.LedgerKeyVersion).String(),
			StoragePath: section.Key(types.LedgerKeyPath).String(),
		}
	}
	return ledger, nil
}

func (a LedgerFileAdapter) Get(root string, name string) (types.InstalledPackageRecord, bool, error) {
	ledger, err := a.Load(root)
	if err != nil {
		return types.InstalledPackageRecord{}, false, err
	}
	record, ok := ledger[name]
	return record, ok, nil
}

func (a LedgerFileAdapter) Upsert(root string, record types.InstalledPackageRecord) error {
	if record.Name == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name is empty")
	}
	ledger, err := a.Load(root)
	if err != nil {
		return err
	}
	ledger[record.Name] = record
	return a.write(root, ledger)
}

func (a LedgerFileAdapter) Delete(root string, name string) error {
	ledger, err := a.Load(root)
	if err != nil {
		return err
	}
	if _, ok := ledger[name]; !ok {
		return nil
	}
	delete(ledger, name)
	return a.write(root, ledger)
}

func (a LedgerFileAdapter) write(root string, ledger types.Ledger) error {
	file := ini.Empty()
	names := make([]string, 0, len(ledger))
	for name := range ledger {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		record := ledger[name]
		section, err := file.NewSection(name)
		if err != nil {
			return ledgerEncodeError(err)
		}
		if _, err := section.NewKey(types.LedgerKeyVersion, record.Version); err != nil {
			return ledgerEncodeError(err)
		}
		if _, err := section.NewKey(types.LedgerKeyPath, record.StoragePath); err != nil {
			return ledgerEncodeError(err)
		}
	}
	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return ledgerEncodeError(err)
	}
	if err := shared.WriteFileAtomic(LedgerPath(root), buf.Bytes(), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write package directory").
			WithCause(err)
	}
	return nil
}

func ledgerEncodeError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to encode package directory").
		WithCause(err)
}

var _ ports.LedgerPort = LedgerFileAdapter{}
