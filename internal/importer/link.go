package importer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mrwhyte0520/billsdr-sub004/internal/accounts"
	"github.com/mrwhyte0520/billsdr-sub004/internal/model"
)

// link attaches each record created by this import to the account named
// by its parent code and recomputes levels for the whole chart. Accounts
// that already existed keep their parent.
func (im *Importer) link(ctx context.Context, owner string, accts []model.Account, records []model.ImportRecord, created map[string]int, result *Result) ([]model.Account, error) {
	svc := accounts.NewService(accts)
	parents := make(map[string]string, len(accts))
	for _, a := range accts {
		parents[a.ID] = a.ParentID
	}

	for i, rec := range records {
		parentCode := strings.TrimSpace(rec.ParentCode)
		code := strings.TrimSpace(rec.Code)
		if parentCode == "" {
			continue
		}
		if idx, ok := created[code]; !ok || idx != i {
			continue
		}
		acct, ok := svc.ByCode(code)
		if !ok {
			continue
		}
		parent, ok := svc.ByCode(parentCode)
		if !ok {
			result.Errors = append(result.Errors, RecordError{Line: i + 1, Record: rec, Reason: fmt.Sprintf("parent code %q not found", parentCode)})
			continue
		}
		if reaches(parents, parent.ID, acct.ID) {
			result.Errors = append(result.Errors, RecordError{Line: i + 1, Record: rec, Reason: fmt.Sprintf("parent code %q would form a cycle", parentCode)})
			continue
		}
		parents[acct.ID] = parent.ID
		result.Linked++
	}
	if result.Linked == 0 {
		return accts, nil
	}

	levels := resolveLevels(parents)
	for _, a := range accts {
		if a.ParentID == parents[a.ID] && a.Level == levels[a.ID] {
			continue
		}
		linked := a.ParentID != parents[a.ID]
		a.ParentID = parents[a.ID]
		a.Level = levels[a.ID]
		if _, err := im.store.UpdateAccount(ctx, a); err != nil {
			im.log.Warn("linking account failed", zap.String("code", a.Code), zap.Error(err))
			re := RecordError{Record: model.ImportRecord{Code: a.Code, Name: a.Name}, Reason: err.Error()}
			if idx, ok := created[a.Code]; ok {
				re.Line = idx + 1
				re.Record = records[idx]
			}
			result.Errors = append(result.Errors, re)
			if linked {
				result.Linked--
			}
		}
	}

	reloaded, err := im.store.Accounts(ctx, owner)
	if err != nil {
		return accts, fmt.Errorf("reloading accounts: %w", err)
	}
	return reloaded, nil
}

// reaches reports whether target is start or one of its ancestors.
func reaches(parents map[string]string, start, target string) bool {
	seen := make(map[string]bool)
	for cur := start; cur != "" && !seen[cur]; cur = parents[cur] {
		if cur == target {
			return true
		}
		seen[cur] = true
	}
	return false
}

// resolveLevels computes the level of every account from the parent map:
// 1 for a root or a dangling parent, otherwise the parent's level plus 1.
func resolveLevels(parents map[string]string) map[string]int {
	levels := make(map[string]int, len(parents))
	var level func(id string, depth int) int
	level = func(id string, depth int) int {
		if l, ok := levels[id]; ok {
			return l
		}
		p := parents[id]
		if _, known := parents[p]; p == "" || !known || depth > len(parents) {
			levels[id] = 1
			return 1
		}
		l := level(p, depth+1) + 1
		levels[id] = l
		return l
	}
	for id := range parents {
		level(id, 0)
	}
	return levels
}
