// Package api exposes the ballot register over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guizzs26/ballot_register/internal/ballot"
	"github.com/Guizzs26/ballot_register/internal/model"
)

// Register is the serialized view of the ballot the handlers work against;
// processing.VoteProcessor implements it.
type Register interface {
	RegisterCandidate(ctx context.Context, name string) error
	CastVote(ctx context.Context, v model.Vote) error
	Votes(candidate string) (uint64, error)
	Winner() (string, error)
	Standings() model.Standings
}

type candidateRequest struct {
	Name string `json:"name" binding:"required"`
}

type voteRequest struct {
	VoterID   string `json:"voter_id" binding:"required"`
	Candidate string `json:"candidate" binding:"required"`
}

type winnerResponse struct {
	Winner string `json:"winner"`
	Votes  uint64 `json:"votes"`
}

func NewRouter(reg Register) *gin.Engine {
	r := gin.Default()

	r.POST("/candidates", func(c *gin.Context) {
		var req candidateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": "bad_request"})
			return
		}
		if err := reg.RegisterCandidate(c.Request.Context(), req.Name); err != nil {
			abort(c, err)
			return
		}
		c.JSON(http.StatusCreated, model.Tally{Candidate: req.Name})
	})

	r.GET("/candidates", func(c *gin.Context) {
		c.JSON(http.StatusOK, reg.Standings())
	})

	r.GET("/candidates/:name/votes", func(c *gin.Context) {
		name := c.Param("name")
		votes, err := reg.Votes(name)
		if err != nil {
			abort(c, err)
			return
		}
		c.JSON(http.StatusOK, model.Tally{Candidate: name, Votes: votes})
	})

	r.POST("/votes", func(c *gin.Context) {
		var req voteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": "bad_request"})
			return
		}
		if err := reg.CastVote(c.Request.Context(), model.NewVote(req.VoterID, req.Candidate)); err != nil {
			abort(c, err)
			return
		}
		c.JSON(http.StatusCreated, reg.Standings())
	})

	r.GET("/winner", func(c *gin.Context) {
		// leader and count must come from the same snapshot
		s := reg.Standings()
		if s.Leader == "" {
			abort(c, ballot.ErrNoVoteRecorded)
			return
		}
		resp := winnerResponse{Winner: s.Leader}
		for _, t := range s.Tallies {
			if t.Candidate == s.Leader {
				resp.Votes = t.Votes
				break
			}
		}
		c.JSON(http.StatusOK, resp)
	})

	return r
}

func abort(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error(), "reason": ballot.Reason(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ballot.ErrCandidateAlreadyExists), errors.Is(err, ballot.ErrAlreadyVoted):
		return http.StatusConflict
	case errors.Is(err, ballot.ErrCandidateNotFound), errors.Is(err, ballot.ErrNoVoteRecorded):
		return http.StatusNotFound
	case errors.Is(err, ballot.ErrNotAuthorized):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
