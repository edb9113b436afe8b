package permission

import (
	"fmt"
	"strings"

	"github.com/minerepair/repairhub/internal/shared/logger"
)

// PolicySync makes the stored casbin policy equal to the policy file. Rules
// missing from the file are removed, new ones are added.
type PolicySync struct {
	enforcer *Enforcer
	logger   logger.Interface
}

func NewPolicySync(enforcer *Enforcer, logger logger.Interface) *PolicySync {
	return &PolicySync{
		enforcer: enforcer,
		logger:   logger,
	}
}

func (s *PolicySync) SyncFromFile(path string) error {
	pf, err := LoadPolicyFile(path)
	if err != nil {
		return err
	}
	return s.Sync(pf)
}

func (s *PolicySync) Sync(pf *PolicyFile) error {
	s.logger.Info("syncing route policy to casbin...")

	desired, err := pf.Rules()
	if err != nil {
		return fmt.Errorf("invalid policy file: %w", err)
	}
	current, err := s.enforcer.Policies()
	if err != nil {
		return err
	}

	add, remove := diffRules(desired, current)
	if len(add) == 0 && len(remove) == 0 {
		s.logger.Infow("route policy already up to date", "rules", len(current))
		return nil
	}

	if err := s.enforcer.Replace(add, remove); err != nil {
		return fmt.Errorf("failed to sync route policy: %w", err)
	}

	s.logger.Infow("route policy synced", "added", len(add), "removed", len(remove))
	return nil
}

func diffRules(desired, current [][]string) (add, remove [][]string) {
	key := func(r []string) string { return strings.Join(r, "\x00") }

	want := make(map[string]bool, len(desired))
	for _, r := range desired {
		want[key(r)] = true
	}
	have := make(map[string]bool, len(current))
	for _, r := range current {
		k := key(r)
		have[k] = true
		if !want[k] {
			remove = append(remove, r)
		}
	}
	for _, r := range desired {
		k := key(r)
		if !have[k] {
			add = append(add, r)
			have[k] = true
		}
	}
	return add, remove
}
