// Package models defines the submission boundary types: the payload a
// client posts, the persisted response record, and the result returned
// to the caller.
package models

import (
	"time"

	formmodels "pulseform/internal/form/models"
	"pulseform/internal/metadata"
)

// ClientMeta is what the submission records about the client. The
// device/browser/OS fields are derived server-side from the user agent;
// the referral fields pass through from the form's landing URL.
type ClientMeta struct {
	UserAgent      string `json:"user_agent"`
	DeviceType     string `json:"device_type,omitempty"`
	Browser        string `json:"browser,omitempty"`
	OS             string `json:"os,omitempty"`
	IPAddress      string `json:"-"`
	ReferralSource string `json:"referral_source,omitempty"`
	UTMMedium      string `json:"utm_medium,omitempty"`
	UTMCampaign    string `json:"utm_campaign,omitempty"`
}

// Payload is the submission request body. Question metadata covers every
// question in the form, not just answered ones, so the server can
// resolve categories without a configuration round trip.
type Payload struct {
	FormID    string                    `json:"form_id"`
	EstateID  string                    `json:"estate_id"`
	SessionID string                    `json:"session_id"`
	Answers   formmodels.AnswerSet      `json:"answers"`
	Questions []formmodels.QuestionMeta `json:"question_meta"`
	Meta      ClientMeta                `json:"metadata"`
	Honeypot  string                    `json:"honeypot,omitempty"`
}

// Result is what the caller receives on acceptance. A honeypot hit
// produces an accepted-looking result with no response ID.
type Result struct {
	Accepted   bool               `json:"accepted"`
	ResponseID string             `json:"response_id,omitempty"`
	Flags      formmodels.FlagSet `json:"flags"`
	Tier       formmodels.Tier    `json:"tier"`
	Duplicate  bool               `json:"duplicate"`
}

// Response is the persisted submission record. Flags and tier are
// computed once at submission time and never recomputed.
type Response struct {
	ID          string
	FormID      string
	EstateID    string
	SessionID   string
	PhoneNumber string
	Tier        formmodels.Tier
	Flags       formmodels.FlagSet
	Duplicate   bool
	Source      string
	Meta        ClientMeta
	SubmittedAt time.Time
}

// AnswerRow is one persisted answer. Multi-select values are stored
// JSON-encoded in Value.
type AnswerRow struct {
	ResponseID string
	QuestionID string
	Value      string
}

// EnrichMeta fills the derived client fields from the user agent,
// falling back to the transport-level values when the payload omits
// them.
func (p *Payload) EnrichMeta(headerUserAgent, clientIP string) {
	if p.Meta.UserAgent == "" {
		p.Meta.UserAgent = headerUserAgent
	}
	info := metadata.ParseUserAgent(p.Meta.UserAgent)
	p.Meta.DeviceType = string(info.DeviceType)
	p.Meta.Browser = info.Browser
	p.Meta.OS = info.OS
	if p.Meta.IPAddress == "" {
		p.Meta.IPAddress = clientIP
	}
}
