package models

import "time"

// Identity constants for the outbound n8n envelope.
const (
	EventSource  = "cupid-ai"
	CompanyEmail = "teamcodance@gmail.com"
)

// Provider source tags. Every Classification and Draft carries one so
// consumers can tell which provider (or fallback) produced it.
const (
	SourceOpenAI = "openai"
	SourceSimAI  = "sim.ai"
	SourceMock   = "mock"
)

// Dot-namespaced event types published by the pipeline.
const (
	EventClassificationCreated = "classification.created"
	EventResponseDrafted       = "response.drafted"
	EventInboxIntake           = "inbox.intake"
	EventInboxIntakeError      = "inbox.intake.error"
	EventInboxSend             = "inbox.send"
	EventEmailSend             = "email.send"
	EventEmailReply            = "email.reply"
	EventFeedbackCreated       = "feedback.created"
)

// Support message channels.
const (
	ChannelEmail  = "email"
	ChannelChat   = "chat"
	ChannelSocial = "social"
)

// Classification categories the classifier is allowed to emit.
var Categories = []string{"billing", "technical", "product_inquiry", "feedback", "refund"}

// Priorities, lowest to highest.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Sentiments.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// KBArticle is one static knowledge-base entry, loaded once at startup and
// never mutated.
type KBArticle struct {
	ID      int      `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Classification is the structured result of classifying one message.
type Classification struct {
	Source     string   `json:"source"`
	Categories []string `json:"categories"`
	Priority   string   `json:"priority"`
	Sentiment  string   `json:"sentiment"`
	Entities   []string `json:"entities"`
	Error      string   `json:"error,omitempty"`
}

// Draft is a reply drafted for one message.
type Draft struct {
	Source   string      `json:"source"`
	Reply    string      `json:"reply"`
	Tone     string      `json:"tone"`
	Language string      `json:"language"`
	Articles []KBArticle `json:"articles"`
	Raw      interface{} `json:"raw,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// AppEvent is a transient application event: published once, delivered to
// zero or more bus subscribers, never stored beyond the inbound webhook
// buffer.
type AppEvent struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// InboundEvent is one buffered event received from the external automation
// tool, stamped at acceptance time.
type InboundEvent struct {
	TS    int64    `json:"ts"`
	Event AppEvent `json:"event"`
}

type ClassifyRequest struct {
	Message string `json:"message" binding:"required"`
	Channel string `json:"channel"`
}

type RespondRequest struct {
	Message   string                 `json:"message" binding:"required"`
	Customer  map[string]interface{} `json:"customer"`
	Sentiment string                 `json:"sentiment"`
}

type IntakeRequest struct {
	Channel string `json:"channel"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// IntakeSummary echoes back what intake accepted.
type IntakeSummary struct {
	Channel      string `json:"channel"`
	From         string `json:"from"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
	CompanyEmail string `json:"companyEmail"`
}

// IntakeResult is the full outcome of one intake orchestration. AutoSend is
// nil when no auto-send was attempted.
type IntakeResult struct {
	Intake         IntakeSummary   `json:"intake"`
	Classification *Classification `json:"classification"`
	Draft          *Draft          `json:"draft"`
	AutoSend       interface{}     `json:"autoSend"`
}

type SendRequest struct {
	To      string                 `json:"to" binding:"required"`
	Subject string                 `json:"subject"`
	Body    string                 `json:"body"`
	Channel string                 `json:"channel"`
	Meta    map[string]interface{} `json:"meta"`
}

// SendReceipt is the simulated-send acknowledgement echoed to the caller and
// forwarded for analytics.
type SendReceipt struct {
	OK       bool                   `json:"ok"`
	From     string                 `json:"from"`
	To       string                 `json:"to"`
	Subject  string                 `json:"subject"`
	Body     string                 `json:"body"`
	Channel  string                 `json:"channel"`
	Meta     map[string]interface{} `json:"meta"`
	Status   string                 `json:"status"`
	QueuedAt int64                  `json:"queuedAt"`
}

type EmailSendRequest struct {
	To       interface{} `json:"to"`
	Subject  string      `json:"subject"`
	HTML     string      `json:"html"`
	Text     string      `json:"text"`
	CC       []string    `json:"cc"`
	BCC      []string    `json:"bcc"`
	ThreadID string      `json:"threadId"`
	ReplyTo  string      `json:"replyTo"`
}

type EmailReplyRequest struct {
	ThreadID string      `json:"threadId"`
	HTML     string      `json:"html"`
	Text     string      `json:"text"`
	To       interface{} `json:"to"`
	CC       []string    `json:"cc"`
	BCC      []string    `json:"bcc"`
}

type FeedbackRequest struct {
	Message string   `json:"message"`
	Email   string   `json:"email"`
	Rating  *float64 `json:"rating"`
}

// Ticket is one demo inbox entry. Seed data only: there is no durable
// ticket store.
type Ticket struct {
	ID       string `json:"id"`
	Channel  string `json:"channel"`
	Customer string `json:"customer"`
	Subject  string `json:"subject"`
	Preview  string `json:"preview"`
	Message  string `json:"message"`
	Time     string `json:"time"`
}

// TicketAnalysis pairs a bulk-analyze outcome back to its ticket by id.
type TicketAnalysis struct {
	TicketID       string          `json:"ticketId"`
	Classification *Classification `json:"classification"`
	Draft          *Draft          `json:"draft"`
}

// AnalyticsSnapshot is the per-minute deterministic mock metric set.
type AnalyticsSnapshot struct {
	ResponseTimeSeconds  int              `json:"responseTimeSeconds"`
	AIResponseSeconds    int              `json:"aiResponseSeconds"`
	HumanResponseSeconds int              `json:"humanResponseSeconds"`
	TicketsToday         int              `json:"ticketsToday"`
	ResolvedToday        int              `json:"resolvedToday"`
	CSAT                 int              `json:"csat"`
	FCR                  int              `json:"fcr"`
	Prevented            int              `json:"prevented"`
	ROISavingsUSD        float64          `json:"roiSavingsUSD"`
	Series               []AnalyticsPoint `json:"series"`
}

type AnalyticsPoint struct {
	Hour           int `json:"hour"`
	Tickets        int `json:"tickets"`
	ResolutionRate int `json:"resolutionRate"`
	AvgResponse    int `json:"avgResponse"`
}

// NowMillis is the timestamp convention used in event envelopes.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
