package campawn

import (
	"github.com/automoto/stratcam/shared/netcomponents"
	"github.com/rs/zerolog"
)

// Accept stores incoming into stored iff its sequence is newer. Stale and
// duplicate states are dropped; the sender is never told.
func Accept(stored *netcomponents.NetMovementData, incoming netcomponents.NetMovementData) bool {
	if !incoming.Supersedes(*stored) {
		return false
	}
	*stored = incoming
	return true
}

// logRejected is the only diagnostic for a dropped state.
func logRejected(logger zerolog.Logger, enabled bool, stored, incoming netcomponents.NetMovementData) {
	if !enabled {
		return
	}
	logger.Debug().
		Uint32("stored_seq", stored.Sequence).
		Uint32("incoming_seq", incoming.Sequence).
		Msg("rejected stale movement")
}

// startSending arms the send timer of a locally controlled pawn.
func (p *Pawn) startSending() {
	if p.sendTimer != 0 {
		return
	}
	p.sendTimer = p.deps.Timers.SetTimer(1/p.deps.Network.SendFrequency, p.sendMovement)
}

// sendMovement bumps the sequence and pushes the outgoing state. On the
// authority there is nobody to send to, so the state is committed locally
// through the same accept rule observers use.
func (p *Pawn) sendMovement() {
	p.outgoing.Sequence++

	if p.HasAuthority() {
		old := p.stored
		if Accept(&p.stored, p.outgoing) {
			p.replicated(old)
		}
		return
	}

	if p.deps.Sender == nil {
		return
	}
	if err := p.deps.Sender.SendMovement(p.outgoing); err != nil {
		// Next tick of the timer supersedes this one anyway.
		p.log.Debug().Err(err).Uint32("seq", p.outgoing.Sequence).Msg("movement send failed")
	}
}
