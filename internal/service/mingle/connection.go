package mingle

import (
	"context"

	"github.com/metamingle/server/internal/db"
	svcErr "github.com/metamingle/server/internal/errors"
	"github.com/metamingle/server/internal/identity"
)

// SendConnectionRequest opens a pending request from the caller to `to`.
//
// The unordered pair (caller, to) owns a single request slot: while a
// pending or accepted request exists in either direction, no new request
// can be made. A rejected request frees the slot.
func (s *Service) SendConnectionRequest(ctx context.Context, caller, to identity.Principal) error {
	if to == caller {
		return svcErr.ErrSelfRequest
	}

	err := s.atomically(func(r repos) error {
		for _, p := range []identity.Principal{caller, to} {
			exists, err := r.profiles.Exists(ctx, p)
			if err != nil {
				return err
			}
			if !exists {
				return svcErr.ErrProfileNotFound
			}
		}

		existing, err := r.connections.GetByPair(ctx, caller, to)
		if err != nil {
			return err
		}
		if existing != nil && existing.Status != db.RequestRejected {
			return svcErr.ErrRequestAlreadyExists
		}

		return r.connections.Save(ctx, &db.ConnectionRequest{
			PairKey: identity.PairKey(caller, to),
			From:    caller.String(),
			To:      to.String(),
			Status:  db.RequestPending,
		})
	})
	if err != nil {
		return err
	}

	s.appCtx.Logger.Info("connection request sent",
		"from", caller.String(), "to", to.String())
	return nil
}

// RespondToRequest resolves the pending request sent by `from` to the
// caller. Only the addressee may respond, and a request resolves exactly
// once.
func (s *Service) RespondToRequest(ctx context.Context, caller, from identity.Principal, accept bool) error {
	return s.atomically(func(r repos) error {
		req, err := r.connections.GetByPair(ctx, caller, from)
		if err != nil {
			return err
		}
		if req == nil {
			return svcErr.ErrRequestNotFound
		}
		if req.To != caller.String() {
			return svcErr.ErrUnauthorized
		}
		if req.Status != db.RequestPending {
			return svcErr.ErrRequestAlreadyResolved
		}

		status := db.RequestRejected
		if accept {
			status = db.RequestAccepted
		}
		return r.connections.UpdateStatus(ctx, req.PairKey, status)
	})
}

// ListConnections returns the principals the caller holds an accepted
// connection with, in stable order. The counterpart is derived from the
// stored pair key rather than the request direction.
func (s *Service) ListConnections(ctx context.Context, caller identity.Principal) ([]identity.Principal, error) {
	r := s.readRepos()

	exists, err := r.profiles.Exists(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, svcErr.ErrProfileNotFound
	}

	rows, err := r.connections.ListAcceptedFor(ctx, caller)
	if err != nil {
		return nil, err
	}

	out := make([]identity.Principal, 0, len(rows))
	for _, row := range rows {
		lo, hi, err := identity.SplitPairKey(row.PairKey)
		if err != nil {
			return nil, err
		}
		if lo == caller {
			out = append(out, hi)
		} else {
			out = append(out, lo)
		}
	}
	return out, nil
}

// ListPendingRequests returns the requests awaiting the caller's response,
// newest first.
func (s *Service) ListPendingRequests(ctx context.Context, caller identity.Principal) ([]db.ConnectionRequest, error) {
	r := s.readRepos()

	exists, err := r.profiles.Exists(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, svcErr.ErrProfileNotFound
	}
	return r.connections.ListPendingFor(ctx, caller)
}
