// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"github.com/alvinbaena/pwd-autopsy/internal/metrics"
	"github.com/alvinbaena/pwd-autopsy/pkg/autopsy"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"net/http"
	"time"
)

// BreachChecker counts how many times a password was seen in breaches.
type BreachChecker interface {
	BreachCount(ctx context.Context, password string) (int, error)
}

type autopsyApi struct {
	breaches BreachChecker
	metrics  *metrics.Collector
}

func (a *autopsyApi) analyze(c *gin.Context) {
	var req autopsyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := autopsyResponse{
		Characteristics: autopsy.Analyze(req.Password),
		DNA:             autopsy.AnalyzeDNA(req.Password),
	}

	if req.CheckBreaches && a.breaches != nil {
		if count, ok := a.breachCount(c, req.Password); ok {
			resp.BreachCount = &count
			resp.Characteristics = resp.Characteristics.WithBreachCount(count)
		}
	}

	a.metrics.RecordAnalysis(resp.Characteristics.DeathCause, resp.Characteristics.StrengthScore)
	c.JSON(http.StatusOK, resp)
}

// breachCount looks the password up, a failed lookup is logged and reported as not ok.
func (a *autopsyApi) breachCount(c *gin.Context, password string) (int, bool) {
	start := time.Now()
	count, err := a.breaches.BreachCount(c.Request.Context(), password)
	a.metrics.RecordBreachLookup(count, err, time.Since(start))

	if err != nil {
		log.Warn().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("breach lookup failed, continuing without it")
		return 0, false
	}
	return count, true
}

func (a *autopsyApi) dna(c *gin.Context) {
	var req dnaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dnaResponse{DNA: autopsy.AnalyzeDNA(req.Password)})
}

// RegisterAutopsyApi mounts the autopsy endpoints on group. breaches may be nil to disable breach lookups.
func RegisterAutopsyApi(group *gin.RouterGroup, breaches BreachChecker, collector *metrics.Collector) {
	if collector == nil {
		collector = metrics.NewCollector(nil)
	}

	a := &autopsyApi{breaches: breaches, metrics: collector}

	group.Use(RequestID())
	group.POST("", a.analyze)
	group.POST("/dna", a.dna)
}
