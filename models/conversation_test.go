package models

import (
	"testing"
	"time"
)

func msgAt(id, senderID, receiverID uint, content string, at time.Time) Message {
	return Message{
		ID:          id,
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Content:     content,
		MessageType: MessagePlain,
		CreatedAt:   at,
		Sender:      User{ID: senderID, Name: "sender"},
		Receiver:    User{ID: receiverID, Name: "receiver"},
	}
}

func TestMergeInsertsUnseenPeer(t *testing.T) {
	now := time.Now()
	var list SummaryList

	list = list.Merge(1, msgAt(10, 2, 1, "hi", now))

	if len(list) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(list))
	}
	if list[0].ID != 2 {
		t.Errorf("peer id = %d, want 2", list[0].ID)
	}
	if list[0].LastMessage != "hi" {
		t.Errorf("last message = %q, want %q", list[0].LastMessage, "hi")
	}
}

func TestMergeKeepsListSortedDescending(t *testing.T) {
	base := time.Now()
	var list SummaryList

	// Three peers, messages arriving oldest-peer-first
	list = list.Merge(1, msgAt(1, 2, 1, "a", base))
	list = list.Merge(1, msgAt(2, 3, 1, "b", base.Add(time.Minute)))
	list = list.Merge(1, msgAt(3, 4, 1, "c", base.Add(2*time.Minute)))

	for i := 1; i < len(list); i++ {
		if list[i].Timestamp.After(list[i-1].Timestamp) {
			t.Fatalf("list not sorted descending at index %d", i)
		}
	}
	if list[0].ID != 4 {
		t.Errorf("newest conversation should be first, got peer %d", list[0].ID)
	}

	// A new message for the oldest peer moves it to the front
	list = list.Merge(1, msgAt(4, 2, 1, "d", base.Add(3*time.Minute)))
	if list[0].ID != 2 {
		t.Errorf("updated conversation should move to front, got peer %d", list[0].ID)
	}
}

func TestMergeIgnoresStaleTimestamp(t *testing.T) {
	base := time.Now()
	var list SummaryList

	list = list.Merge(1, msgAt(2, 2, 1, "newer", base.Add(time.Minute)))
	list = list.Merge(1, msgAt(1, 2, 1, "older", base))

	if list[0].LastMessage != "newer" {
		t.Errorf("stale message overwrote preview: got %q", list[0].LastMessage)
	}
	if !list[0].Timestamp.Equal(base.Add(time.Minute)) {
		t.Errorf("stale message rolled timestamp back to %v", list[0].Timestamp)
	}
}

func TestMergePreviewForNonTextMessages(t *testing.T) {
	now := time.Now()

	shared := msgAt(1, 2, 1, "", now)
	shared.MessageType = MessageSharedPost
	shared.SharedPost = &SharedPost{PostID: 9, Author: "someone"}

	photo := msgAt(2, 3, 1, "", now)
	photo.Images = []string{"/uploads/a.png"}

	var list SummaryList
	list = list.Merge(1, shared)
	list = list.Merge(1, photo)

	previews := map[uint]string{}
	for _, s := range list {
		previews[s.ID] = s.LastMessage
	}
	if previews[2] != "Shared a post" {
		t.Errorf("shared post preview = %q", previews[2])
	}
	if previews[3] != "Sent a photo" {
		t.Errorf("photo preview = %q", previews[3])
	}
}

func TestBuildSummaries(t *testing.T) {
	base := time.Now()
	msgs := []Message{
		msgAt(1, 1, 2, "to peer 2", base),
		msgAt(2, 3, 1, "from peer 3", base.Add(time.Minute)),
		msgAt(3, 2, 1, "from peer 2", base.Add(2*time.Minute)),
	}

	unread := map[uint]int64{2: 1, 3: 5}
	list := BuildSummaries(1, msgs, func(peerID uint) int64 {
		return unread[peerID]
	})

	if len(list) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(list))
	}
	if list[0].ID != 2 || list[0].LastMessage != "from peer 2" {
		t.Errorf("first summary = peer %d %q", list[0].ID, list[0].LastMessage)
	}
	if list[0].UnreadCount != 1 || list[1].UnreadCount != 5 {
		t.Errorf("unread counts = %d, %d", list[0].UnreadCount, list[1].UnreadCount)
	}
}

// After a thread fetch the counter source returns zero; the projection must
// reflect exactly that.
func TestBuildSummariesUnreadReset(t *testing.T) {
	msgs := []Message{msgAt(1, 2, 1, "hi", time.Now())}

	list := BuildSummaries(1, msgs, func(peerID uint) int64 { return 0 })
	if list[0].UnreadCount != 0 {
		t.Errorf("unread after reset = %d, want 0", list[0].UnreadCount)
	}
}

func TestMessageEmpty(t *testing.T) {
	if !(&Message{}).Empty() {
		t.Error("blank message should be empty")
	}
	if (&Message{Content: "x"}).Empty() {
		t.Error("message with content should not be empty")
	}
	if (&Message{Images: []string{"a"}}).Empty() {
		t.Error("message with images should not be empty")
	}
	if (&Message{SharedPost: &SharedPost{PostID: 1}}).Empty() {
		t.Error("message with shared post should not be empty")
	}
}
