package models

import (
	"sort"
	"time"
)

// Participant is the peer half of a conversation summary.
type Participant struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Role   string `json:"role"`
}

// ConversationSummary is the list-view projection of a message thread with
// one other user.
type ConversationSummary struct {
	ID          uint        `json:"id"` // peer user id
	Participant Participant `json:"participant"`
	LastMessage string      `json:"last_message"`
	Timestamp   time.Time   `json:"timestamp"`
	UnreadCount int64       `json:"unread_count"`
}

// SummaryList keeps conversation summaries sorted descending by timestamp.
type SummaryList []ConversationSummary

// Merge folds a message into the list from the given user's perspective.
// Unknown peers get a new entry. A message older than the recorded last
// message never overwrites the newer preview, so out-of-order delivery
// cannot roll the list backwards. The list is re-sorted after every merge.
func (l SummaryList) Merge(selfID uint, msg Message) SummaryList {
	peerID := msg.PeerOf(selfID)

	preview := msg.Content
	if preview == "" && msg.MessageType == MessageSharedPost {
		preview = "Shared a post"
	} else if preview == "" && len(msg.Images) > 0 {
		preview = "Sent a photo"
	}

	found := false
	for i := range l {
		if l[i].ID != peerID {
			continue
		}
		found = true
		if !msg.CreatedAt.Before(l[i].Timestamp) {
			l[i].LastMessage = preview
			l[i].Timestamp = msg.CreatedAt
		}
		break
	}

	if !found {
		peer := msg.Sender
		if msg.SenderID == selfID {
			peer = msg.Receiver
		}
		l = append(l, ConversationSummary{
			ID: peerID,
			Participant: Participant{
				ID:     peerID,
				Name:   peer.Name,
				Avatar: peer.Avatar,
				Role:   peer.Role,
			},
			LastMessage: preview,
			Timestamp:   msg.CreatedAt,
		})
	}

	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Timestamp.After(l[j].Timestamp)
	})
	return l
}

// BuildSummaries projects a user's messages into a conversation list.
// Messages may come in any order; unread counts are filled in afterwards
// from the supplied lookup.
func BuildSummaries(selfID uint, msgs []Message, unread func(peerID uint) int64) SummaryList {
	var list SummaryList
	for _, msg := range msgs {
		list = list.Merge(selfID, msg)
	}
	if unread != nil {
		for i := range list {
			list[i].UnreadCount = unread(list[i].ID)
		}
	}
	return list
}
