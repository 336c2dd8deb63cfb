package tools

import (
	"encoding/base64"
	"testing"

	"imageserver/internal/core"
)

func TestGetImageRoundTrip(t *testing.T) {
	toolbox := newTestToolbox(t, &stubService{})
	payload := []byte{0x89, 'P', 'N', 'G'}
	if _, err := toolbox.store.Write("fox.png", payload); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	resp, err := toolbox.GetImage("fox.png")
	if err != nil {
		t.Fatalf("get image: %v", err)
	}
	if !resp.Success || resp.Filename != "fox.png" || resp.Size != len(payload) {
		t.Fatalf("response = %#v", resp)
	}
	decoded, err := base64.StdEncoding.DecodeString(resp.ImageBase64)
	if err != nil {
		t.Fatalf("payload not base64: %v", err)
	}
	if string(decoded) != string(payload) {
		t.Fatalf("payload mismatch")
	}
}

func TestGetImageMissing(t *testing.T) {
	toolbox := newTestToolbox(t, &stubService{})

	_, err := toolbox.GetImage("absent.png")
	if err == nil {
		t.Fatalf("missing image succeeded")
	}
	if core.KindOf(err) != core.KindImageProcessing {
		t.Fatalf("kind = %v, want KindImageProcessing", core.KindOf(err))
	}
}

func TestGetImageEmptyFilename(t *testing.T) {
	toolbox := newTestToolbox(t, &stubService{})

	_, err := toolbox.GetImage("")
	if core.KindOf(err) != core.KindValidation {
		t.Fatalf("kind = %v, want KindValidation", core.KindOf(err))
	}
}

func TestGetImageRejectsTraversal(t *testing.T) {
	toolbox := newTestToolbox(t, &stubService{})

	if _, err := toolbox.GetImage("../../etc/passwd"); err == nil {
		t.Fatalf("traversal filename accepted")
	}
}
