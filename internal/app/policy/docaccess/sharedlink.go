// internal/app/policy/docaccess/sharedlink.go
package docaccess

import (
	"context"
	"time"

	"github.com/quangphamai/mindmapnote/internal/domain/models"
)

// shareResolver evaluates time-bounded shared links addressed to the
// caller's email or user id. A link counts only while it is active and
// its expiry, if any, is strictly in the future.
type shareResolver struct {
	ranks  *Ranks
	shares ShareSource
	now    func() time.Time
}

func (s *shareResolver) name() string { return "shared links" }

func (s *shareResolver) resolve(ctx context.Context, p Principal, doc models.Document, action Action) (bool, error) {
	links, err := s.shares.ListActiveForTarget(ctx, doc.ID, p.Email, p.UserID)
	if err != nil {
		return false, err
	}
	if len(links) == 0 {
		return false, nil
	}

	now := s.now()
	need := s.ranks.RequiredAction(action)
	for _, link := range links {
		if link.Expired(now) {
			continue
		}
		if s.ranks.ShareAccess(link.AccessLevel) >= need {
			return true, nil
		}
	}
	return false, nil
}
