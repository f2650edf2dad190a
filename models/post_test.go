package models

import (
	"testing"
)

func TestPostSnapshot(t *testing.T) {
	post := Post{
		ID:           12,
		Author:       User{ID: 4, Name: "Priya"},
		Content:      "Tryouts on Friday",
		Images:       []string{"/uploads/poster.png"},
		LikeCount:    17,
		CommentCount: 3,
	}

	snap := post.Snapshot()

	if snap.PostID != 12 {
		t.Errorf("post id = %d, want 12", snap.PostID)
	}
	if snap.Author != "Priya" {
		t.Errorf("author = %q, want %q", snap.Author, "Priya")
	}
	if snap.Content != "Tryouts on Friday" {
		t.Errorf("content = %q", snap.Content)
	}
	if len(snap.Images) != 1 || snap.Images[0] != "/uploads/poster.png" {
		t.Errorf("images = %v", snap.Images)
	}
	if snap.LikeCount != 17 || snap.CommentCount != 3 {
		t.Errorf("counts = %d, %d", snap.LikeCount, snap.CommentCount)
	}
}
