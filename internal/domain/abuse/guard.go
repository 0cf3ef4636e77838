package abuse

import (
	"context"
	"fmt"
	"time"

	"github.com/questx-lab/rewardengine/config"
	"github.com/questx-lab/rewardengine/internal/common"
	"github.com/questx-lab/rewardengine/pkg/errorx"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
)

const (
	ActionPost           = "post"
	ActionComment        = "comment"
	ActionDraw           = "draw"
	ActionDailyClaim     = "daily_claim"
	ActionTicketPurchase = "ticket_purchase"
	ActionClaimPrize     = "claim_prize"
)

// CollaboratorActions are reported by the community features. The other
// actions are recorded by the operations performing them.
var CollaboratorActions = []string{ActionPost, ActionComment}

const (
	RuleRate    = "rate"
	RuleContent = "content"
)

type Decision struct {
	Allowed bool
	Rule    string
	Reason  string

	// Banned is set when the denied identity is banned after this decision.
	Banned bool
}

// Err converts a denial to the error returned to the caller.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}

	suffix := ""
	if d.Banned {
		suffix = ", the account is suspended"
	}

	if d.Rule == RuleContent {
		return errorx.New(errorx.ContentViolation, "Content violates the community rules%s", suffix)
	}

	if d.Banned {
		return errorx.New(errorx.RateLimited, "Too many requests%s", suffix)
	}

	return errorx.New(errorx.RateLimited, "Too many requests, try again later")
}

// Banner persists bans. Banning an already banned identity must be a no-op
// returning false.
type Banner interface {
	Ban(ctx context.Context, userID, reason string) (bool, error)
}

type Guard interface {
	CheckAndRecord(ctx context.Context, identity, action, payload string) Decision
}

type guard struct {
	counter  Counter
	banner   Banner
	policies map[string]config.AbusePolicy
	rules    []Rule
	now      func() time.Time
}

func NewGuard(counter Counter, banner Banner, cfg config.AbuseConfigs, rules ...Rule) *guard {
	if len(cfg.BannedKeywords) > 0 {
		rules = append(rules, NewKeywordRule(cfg.BannedKeywords...))
	}

	return &guard{
		counter:  counter,
		banner:   banner,
		policies: cfg.Policies,
		rules:    rules,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CheckAndRecord records the action and decides whether it may proceed. A
// denied identity is banned, except for rate violations of policies which
// disable BanOnExceed. Failures of the counter let the action through.
func (g *guard) CheckAndRecord(ctx context.Context, identity, action, payload string) Decision {
	for _, rule := range g.rules {
		if reason := rule.Check(action, payload); reason != "" {
			return g.deny(ctx, identity, action, RuleContent, reason, true)
		}
	}

	policy, ok := g.policies[action]
	if !ok || policy.Limit <= 0 || policy.Window.Duration <= 0 {
		return Decision{Allowed: true}
	}

	count, err := g.counter.Record(ctx, identity, action, g.now(), policy.Window.Duration)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot record abuse counter of %s, allow the action: %v", action, err)
		return Decision{Allowed: true}
	}

	if count > policy.Limit {
		reason := fmt.Sprintf("exceeded %d %s actions in %s", policy.Limit, action, policy.Window.Duration)
		return g.deny(ctx, identity, action, RuleRate, reason, policy.BanOnExceed)
	}

	return Decision{Allowed: true}
}

func (g *guard) deny(ctx context.Context, identity, action, rule, reason string, ban bool) Decision {
	xcontext.Logger(ctx).Warnf("Abuse detected: identity=%s action=%s reason=%s", identity, action, reason)
	common.PromCounters[common.AbuseDenialTotal].WithLabelValues(action, rule).Inc()

	decision := Decision{Allowed: false, Rule: rule, Reason: reason}
	if ban {
		// The ban must be persisted even if the caller gives up.
		banCtx, cancel := xcontext.WithTxDeadline(ctx)
		defer cancel()

		newlyBanned, err := g.banner.Ban(banCtx, identity, reason)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot ban %s: %v", identity, err)
		} else {
			decision.Banned = true
			if newlyBanned {
				xcontext.Logger(ctx).Infof("Banned %s: %s", identity, reason)
			}
		}
	}

	return decision
}
