// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/tutor-tui/internal/api"
	"github.com/jeranaias/tutor-tui/internal/model"
	"github.com/jeranaias/tutor-tui/internal/ui/components"
	"github.com/jeranaias/tutor-tui/internal/ui/styles"
)

func newTestModel() Model {
	identity := model.Identity{Name: "Ada Lovelace", Email: "ada@example.com", Token: "tok-1"}
	client := api.NewClient()
	client.SetToken(identity.Token)
	m := New(client, styles.NewTheme(), identity, 6, true)
	m.SetSize(120, 40)
	return m
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func TestSubmitBlankIsNoOp(t *testing.T) {
	m := newTestModel()

	m, _ = m.Update(enterKey())

	if m.state != StateEmpty {
		t.Errorf("state = %v, want StateEmpty", m.state)
	}
	if len(m.messages) != 0 {
		t.Errorf("len(messages) = %d, want 0", len(m.messages))
	}
	if m.activeID != "" {
		t.Errorf("activeID = %q, want empty", m.activeID)
	}
}

func TestSubmitMintsConversationID(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("What is mitosis?")

	m, cmd := m.Update(enterKey())

	if m.state != StateAwaiting {
		t.Errorf("state = %v, want StateAwaiting", m.state)
	}
	if !strings.HasPrefix(m.activeID, "chat-") {
		t.Errorf("activeID = %q, want chat- prefix", m.activeID)
	}
	if len(m.messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(m.messages))
	}
	if m.messages[0].Role != model.RoleUser || m.messages[0].Text != "What is mitosis?" {
		t.Errorf("messages[0] = %+v, want user question", m.messages[0])
	}
	if !m.messages[1].Thinking {
		t.Error("messages[1].Thinking = false, want trailing placeholder")
	}
	if m.input.Value() != "" {
		t.Errorf("input = %q, want cleared", m.input.Value())
	}
	if cmd == nil {
		t.Error("cmd = nil, want send command")
	}
}

func TestSubmitWhileAwaitingIsNoOp(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("first question")
	m, _ = m.Update(enterKey())

	m.input.SetValue("second question")
	m, _ = m.Update(enterKey())

	if len(m.messages) != 2 {
		t.Errorf("len(messages) = %d, want 2 (double submit must not append)", len(m.messages))
	}
	if m.input.Value() != "second question" {
		t.Errorf("input = %q, want preserved", m.input.Value())
	}
}

func TestAnswerReplacesTrailingPlaceholder(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("What is mitosis?")
	m, _ = m.Update(enterKey())

	answer := &api.ChatAnswer{
		Answer:  "Cell division producing two identical daughter cells.",
		Sources: []model.SourceRef{{Source: "biology.pdf", Page: 12}},
	}
	m, _ = m.Update(answerMsg{conversationID: m.activeID, answer: answer})

	if m.state != StateIdle {
		t.Errorf("state = %v, want StateIdle", m.state)
	}
	if len(m.messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(m.messages))
	}
	last := m.messages[1]
	if last.Thinking {
		t.Error("placeholder not replaced")
	}
	if last.Text != answer.Answer {
		t.Errorf("answer text = %q, want %q", last.Text, answer.Answer)
	}
	if len(last.Sources) != 1 || last.Sources[0].Source != "biology.pdf" {
		t.Errorf("sources = %+v, want biology.pdf citation", last.Sources)
	}
}

func TestAnswerErrorShowsGenericMessage(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("What is mitosis?")
	m, _ = m.Update(enterKey())

	m, _ = m.Update(answerMsg{conversationID: m.activeID, err: api.ErrTimeout})

	if m.state != StateIdle {
		t.Errorf("state = %v, want StateIdle", m.state)
	}
	last := m.messages[len(m.messages)-1]
	if last.Text != "Error connecting." {
		t.Errorf("error text = %q, want %q", last.Text, "Error connecting.")
	}
	if last.Thinking {
		t.Error("placeholder not replaced on failure")
	}
}

func TestAnswerForAbandonedConversationDropped(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("first question")
	m, _ = m.Update(enterKey())
	staleID := m.activeID

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})

	m, _ = m.Update(answerMsg{conversationID: staleID, answer: &api.ChatAnswer{Answer: "late"}})

	if m.state != StateEmpty {
		t.Errorf("state = %v, want StateEmpty", m.state)
	}
	if len(m.messages) != 0 {
		t.Errorf("len(messages) = %d, want 0 (late answer must be dropped)", len(m.messages))
	}
}

func TestStaleConversationRefreshDropped(t *testing.T) {
	m := newTestModel()
	m.listSeq = 2

	stale := []model.ConversationSummary{{ID: "old", Title: "Old"}}
	m, _ = m.Update(conversationsMsg{seq: 1, conversations: stale})
	if got := len(m.sidebar.Conversations()); got != 0 {
		t.Errorf("stale refresh applied: len = %d, want 0", got)
	}

	fresh := []model.ConversationSummary{{ID: "new", Title: "New"}}
	m, _ = m.Update(conversationsMsg{seq: 2, conversations: fresh})
	if got := m.sidebar.Conversations(); len(got) != 1 || got[0].ID != "new" {
		t.Errorf("fresh refresh not applied: %+v", got)
	}
}

func TestConversationRefreshErrorKeepsCachedList(t *testing.T) {
	m := newTestModel()

	cached := []model.ConversationSummary{{ID: "c1", Title: "Photosynthesis"}}
	m, _ = m.Update(conversationsMsg{seq: 1, conversations: cached})

	m, _ = m.Update(conversationsMsg{seq: 1, err: api.ErrTimeout})

	if got := m.sidebar.Conversations(); len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("cached list lost on refresh failure: %+v", got)
	}
}

func TestHistoryLoadTransitions(t *testing.T) {
	m := newTestModel()

	m, cmd := m.openConversation("conv-1")
	if m.state != StateLoading {
		t.Fatalf("state = %v, want StateLoading", m.state)
	}
	if cmd == nil {
		t.Fatal("cmd = nil, want history fetch")
	}

	history := []model.Message{
		model.NewUserMessage("What is osmosis?"),
		model.NewAssistantMessage("Diffusion of water across a membrane.", nil),
	}
	m, _ = m.Update(historyMsg{id: "conv-1", messages: history})

	if m.state != StateIdle {
		t.Errorf("state = %v, want StateIdle", m.state)
	}
	if len(m.messages) != 2 {
		t.Errorf("len(messages) = %d, want 2", len(m.messages))
	}
}

func TestHistoryLoadFailureLandsIdleEmpty(t *testing.T) {
	m := newTestModel()
	m, _ = m.openConversation("conv-1")

	m, _ = m.Update(historyMsg{id: "conv-1", err: api.ErrTimeout})

	if m.state != StateIdle {
		t.Errorf("state = %v, want StateIdle", m.state)
	}
	if len(m.messages) != 0 {
		t.Errorf("len(messages) = %d, want 0 on failed load", len(m.messages))
	}
}

func TestLateHistoryForSwitchedConversationDropped(t *testing.T) {
	m := newTestModel()
	m, _ = m.openConversation("conv-a")
	m, _ = m.openConversation("conv-b")

	m, _ = m.Update(historyMsg{id: "conv-a", messages: []model.Message{model.NewUserMessage("stale")}})
	if m.state != StateLoading {
		t.Errorf("state = %v, want StateLoading (stale history must not complete the load)", m.state)
	}
	if len(m.messages) != 0 {
		t.Errorf("stale history applied: %+v", m.messages)
	}

	m, _ = m.Update(historyMsg{id: "conv-b", messages: []model.Message{model.NewUserMessage("current")}})
	if m.state != StateIdle || len(m.messages) != 1 {
		t.Errorf("current history not applied: state=%v messages=%d", m.state, len(m.messages))
	}
}

func TestOpenConversationWhileAwaitingIsNoOp(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("in flight question")
	m, _ = m.Update(enterKey())
	active := m.activeID

	m, cmd := m.openConversation("conv-other")

	if m.activeID != active {
		t.Errorf("activeID = %q, want %q (switch must wait for the turn)", m.activeID, active)
	}
	if m.state != StateAwaiting {
		t.Errorf("state = %v, want StateAwaiting", m.state)
	}
	if cmd != nil {
		t.Error("cmd != nil, want no history fetch while awaiting")
	}
}

func TestReopenSameConversationIsNoOp(t *testing.T) {
	m := newTestModel()
	m, _ = m.openConversation("conv-1")
	m, _ = m.Update(historyMsg{id: "conv-1", messages: []model.Message{model.NewUserMessage("hi")}})

	m, cmd := m.openConversation("conv-1")

	if m.state != StateIdle {
		t.Errorf("state = %v, want StateIdle (no reload for same id)", m.state)
	}
	if cmd != nil {
		t.Error("cmd != nil, want no refetch for unchanged id")
	}
}

func TestDeleteConversationFlow(t *testing.T) {
	m := newTestModel()
	conversations := []model.ConversationSummary{
		{ID: "c1", Title: "Photosynthesis"},
		{ID: "c2", Title: "Osmosis"},
	}
	m, _ = m.Update(conversationsMsg{seq: 1, conversations: conversations})
	m, _ = m.openConversation("c1")
	m, _ = m.Update(historyMsg{id: "c1"})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if !m.confirm.IsVisible() {
		t.Fatal("confirm dialog not shown")
	}

	m, cmd := m.Update(components.ConfirmResultMsg{
		Kind:     components.ConfirmConversation,
		Target:   "c1",
		Accepted: true,
	})

	if got := m.sidebar.Conversations(); len(got) != 1 || got[0].ID != "c2" {
		t.Errorf("conversation not removed optimistically: %+v", got)
	}
	if m.state != StateEmpty {
		t.Errorf("state = %v, want StateEmpty after deleting the active conversation", m.state)
	}
	if cmd == nil {
		t.Error("cmd = nil, want delete request")
	}
}

func TestDeclinedDeleteKeepsConversation(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(conversationsMsg{seq: 1, conversations: []model.ConversationSummary{{ID: "c1"}}})

	m, cmd := m.Update(components.ConfirmResultMsg{
		Kind:     components.ConfirmConversation,
		Target:   "c1",
		Accepted: false,
	})

	if got := m.sidebar.Conversations(); len(got) != 1 {
		t.Errorf("declined delete removed the conversation: %+v", got)
	}
	if cmd != nil {
		t.Error("cmd != nil, want no request on decline")
	}
}

func TestDocumentDeleteRoutesThroughConfirm(t *testing.T) {
	m := newTestModel()

	doc := model.Document{StoredName: "abc123_biology.pdf"}
	m, _ = m.Update(components.DocDeleteRequestMsg{Doc: doc})
	if !m.confirm.IsVisible() {
		t.Fatal("confirm dialog not shown for document delete")
	}

	m, cmd := m.Update(components.ConfirmResultMsg{
		Kind:     components.ConfirmDocument,
		Target:   doc.StoredName,
		Accepted: true,
	})
	if cmd == nil {
		t.Error("cmd = nil, want document delete request")
	}
	if !m.docPanel.IsLoading() {
		t.Error("panel not marked loading during delete")
	}
}

func TestDocumentDeleteTriggersRefresh(t *testing.T) {
	m := newTestModel()
	seq := m.docSeq

	m, cmd := m.Update(docDeletedMsg{})

	if m.docSeq != seq+1 {
		t.Errorf("docSeq = %d, want %d", m.docSeq, seq+1)
	}
	if cmd == nil {
		t.Error("cmd = nil, want listing refresh after delete")
	}
}

func TestStaleDocumentListDropped(t *testing.T) {
	m := newTestModel()
	m.docSeq = 2

	m, _ = m.Update(documentsMsg{seq: 1, docs: []model.Document{{StoredName: "x_old.pdf"}}})
	if got := len(m.docPanel.Documents()); got != 0 {
		t.Errorf("stale document list applied: len = %d, want 0", got)
	}

	m, _ = m.Update(documentsMsg{seq: 2, docs: []model.Document{{StoredName: "y_new.pdf"}}})
	if got := m.docPanel.Documents(); len(got) != 1 || got[0].StoredName != "y_new.pdf" {
		t.Errorf("fresh document list not applied: %+v", got)
	}
}

func TestUploadSuccessRefreshesListing(t *testing.T) {
	m := newTestModel()
	seq := m.docSeq

	result := &api.UploadResult{Filename: "biology.pdf", Pages: 12, Chunks: 80}
	m, cmd := m.Update(uploadedMsg{result: result})

	if m.docSeq != seq+1 {
		t.Errorf("docSeq = %d, want %d", m.docSeq, seq+1)
	}
	if cmd == nil {
		t.Error("cmd = nil, want listing refresh after upload")
	}
}

func TestUploadNoticeFormat(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{
			name:     "stored prefix stripped",
			filename: "a1b2c3_biology.pdf",
			want:     "Uploaded biology.pdf (12 pages, 80 chunks).",
		},
		{
			name:     "no prefix shown as-is",
			filename: "biology.pdf",
			want:     "Uploaded biology.pdf (12 pages, 80 chunks).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := uploadNotice(&api.UploadResult{Filename: tt.filename, Pages: 12, Chunks: 80})
			if got != tt.want {
				t.Errorf("uploadNotice = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUploadFailureStopsLoading(t *testing.T) {
	m := newTestModel()
	m.docPanel.SetLoading(true)

	m, cmd := m.Update(uploadedMsg{err: api.ErrTimeout})

	if m.docPanel.IsLoading() {
		t.Error("panel still loading after failed upload")
	}
	if cmd != nil {
		t.Error("cmd != nil, want no refresh on failed upload")
	}
}

func TestDocumentPanelToggle(t *testing.T) {
	m := newTestModel()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	if !m.docPanel.IsVisible() {
		t.Fatal("panel not shown")
	}
	if cmd == nil {
		t.Error("cmd = nil, want listing fetch on open")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	if m.docPanel.IsVisible() {
		t.Error("panel still visible after toggle")
	}
}

func TestSignOutResetsEverything(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(conversationsMsg{seq: 1, conversations: []model.ConversationSummary{{ID: "c1"}}})
	m, _ = m.openConversation("c1")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})

	if m.state != StateEmpty {
		t.Errorf("state = %v, want StateEmpty", m.state)
	}
	if m.activeID != "" {
		t.Errorf("activeID = %q, want empty", m.activeID)
	}
	if got := len(m.sidebar.Conversations()); got != 0 {
		t.Errorf("sidebar still has %d conversations", got)
	}
	if cmd == nil {
		t.Fatal("cmd = nil, want SignOutMsg")
	}
	if _, ok := cmd().(SignOutMsg); !ok {
		t.Errorf("cmd() = %T, want SignOutMsg", cmd())
	}
}
