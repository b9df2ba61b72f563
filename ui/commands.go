package ui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentbazaar/bazaar/api"
	"github.com/agentbazaar/bazaar/types"
)

// Message types for async operations

type agentsMsg struct {
	requestID int
	listings  []types.Listing
	err       error
}

type agentDetailMsg struct {
	requestID int
	detail    api.AgentDetail
	err       error
}

type bundlesMsg struct {
	requestID int
	bundles   []types.Bundle
	err       error
}

type bundleDetailMsg struct {
	requestID int
	bundle    types.Bundle
	err       error
}

type ownedAgentsMsg struct {
	requestID int
	listings  []types.Listing
	err       error
}

type devOverviewMsg struct {
	requestID int
	overview  api.DeveloperOverview
	err       error
}

// actionResultMsg reports the outcome of a mutating request.
type actionResultMsg struct {
	key     string
	message string
	err     error
}

type clipboardMsg struct {
	err error
}

// withTimeout runs fn on the command goroutine under a bounded context.
func withTimeout(timeout time.Duration, fn func(ctx context.Context) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return fn(ctx)
	}
}

func fetchAgents(source types.MarketplaceSource, timeout time.Duration, q types.AgentQuery, requestID int) tea.Cmd {
	return withTimeout(timeout, func(ctx context.Context) tea.Msg {
		listings, err := source.ListAgents(ctx, q)
		return agentsMsg{requestID: requestID, listings: listings, err: err}
	})
}

func fetchAgentDetail(source types.MarketplaceSource, timeout time.Duration, slug string, requestID int) tea.Cmd {
	return withTimeout(timeout, func(ctx context.Context) tea.Msg {
		detail, err := api.LoadAgentDetail(ctx, source, slug)
		return agentDetailMsg{requestID: requestID, detail: detail, err: err}
	})
}

func fetchBundles(source types.MarketplaceSource, timeout time.Duration, requestID int) tea.Cmd {
	return withTimeout(timeout, func(ctx context.Context) tea.Msg {
		bundles, err := source.ListBundles(ctx)
		return bundlesMsg{requestID: requestID, bundles: bundles, err: err}
	})
}

func fetchBundleDetail(source types.MarketplaceSource, timeout time.Duration, slug string, requestID int) tea.Cmd {
	return withTimeout(timeout, func(ctx context.Context) tea.Msg {
		bundle, err := source.GetBundle(ctx, slug)
		return bundleDetailMsg{requestID: requestID, bundle: bundle, err: err}
	})
}

func fetchOwnedAgents(source types.MarketplaceSource, timeout time.Duration, userID string, requestID int) tea.Cmd {
	return withTimeout(timeout, func(ctx context.Context) tea.Msg {
		listings, err := source.GetUserAgents(ctx, userID)
		return ownedAgentsMsg{requestID: requestID, listings: listings, err: err}
	})
}

func fetchDevOverview(source types.MarketplaceSource, timeout time.Duration, developerName string, requestID int) tea.Cmd {
	return withTimeout(timeout, func(ctx context.Context) tea.Msg {
		overview, err := api.LoadDeveloperOverview(ctx, source, developerName)
		return devOverviewMsg{requestID: requestID, overview: overview, err: err}
	})
}

func purchaseAgent(source types.MarketplaceSource, timeout time.Duration, agentID string) tea.Cmd {
	return withTimeout(timeout, func(ctx context.Context) tea.Msg {
		message, err := source.PurchaseAgent(ctx, agentID)
		return actionResultMsg{key: agentAction(agentID), message: message, err: err}
	})
}

func purchaseBundle(source types.MarketplaceSource, timeout time.Duration, bundleID string) tea.Cmd {
	return withTimeout(timeout, func(ctx context.Context) tea.Msg {
		message, err := source.PurchaseBundle(ctx, bundleID)
		return actionResultMsg{key: bundleAction(bundleID), message: message, err: err}
	})
}

func submitAgent(source types.MarketplaceSource, timeout time.Duration, draft types.Submission) tea.Cmd {
	return withTimeout(timeout, func(ctx context.Context) tea.Msg {
		result, err := source.SubmitAgent(ctx, draft)
		return actionResultMsg{key: submitAction, message: result.Message, err: err}
	})
}

func joinWaitlist(source types.MarketplaceSource, timeout time.Duration, entry types.WaitlistEntry) tea.Cmd {
	return withTimeout(timeout, func(ctx context.Context) tea.Msg {
		message, err := source.JoinWaitlist(ctx, entry)
		return actionResultMsg{key: waitlistAction, message: message, err: err}
	})
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{err: clipboard.WriteAll(text)}
	}
}
