// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikeDelta_TransitionTable(t *testing.T) {
	// 1. Every (previous, next) pair has exact, fixed deltas.
	cases := []struct {
		previous      LikingState
		next          LikingState
		likesDelta    int64
		dislikesDelta int64
	}{
		{StateNone, StateNone, 0, 0},
		{StateNone, StateLiked, 1, 0},
		{StateNone, StateDisliked, 0, 1},
		{StateLiked, StateNone, -1, 0},
		{StateLiked, StateLiked, 0, 0},
		{StateLiked, StateDisliked, -1, 1},
		{StateDisliked, StateNone, 0, -1},
		{StateDisliked, StateLiked, 1, -1},
		{StateDisliked, StateDisliked, 0, 0},
	}

	for _, c := range cases {
		likes, dislikes := likeDelta(c.previous, c.next)
		assert.Equal(t, c.likesDelta, likes, "%s -> %s likes", c.previous, c.next)
		assert.Equal(t, c.dislikesDelta, dislikes, "%s -> %s dislikes", c.previous, c.next)
	}
}

func TestLikeDelta_RoundTripRestoresCounters(t *testing.T) {
	// 1. Walk a user through every state and back to NONE.
	var likes, dislikes int64 = 10, 4
	state := StateNone

	apply := func(next LikingState) {
		l, d := likeDelta(state, next)
		likes += l
		dislikes += d
		state = next
	}

	apply(StateLiked)
	apply(StateDisliked)
	apply(StateLiked)
	apply(StateNone)

	// 2. Counters return to their baseline once the reaction is withdrawn.
	assert.Equal(t, int64(10), likes)
	assert.Equal(t, int64(4), dislikes)
}

func TestLikeDelta_SelfTransitionIsNoOp(t *testing.T) {
	for _, state := range []LikingState{StateNone, StateLiked, StateDisliked} {
		likes, dislikes := likeDelta(state, state)
		assert.Zero(t, likes)
		assert.Zero(t, dislikes)
	}
}
