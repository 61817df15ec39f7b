package utils

import "testing"

func TestIsAllowedImageFile(t *testing.T) {
	allowed := []string{"photo.jpg", "photo.JPG", "pic.jpeg", "pic.png", "a.b.c.PNG"}
	for _, name := range allowed {
		if !IsAllowedImageFile(name) {
			t.Errorf("%q should be allowed", name)
		}
	}

	rejected := []string{"script.exe", "page.html", "noext", "archive.tar.gz", "shell.php", "image.gif"}
	for _, name := range rejected {
		if IsAllowedImageFile(name) {
			t.Errorf("%q should be rejected", name)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":            "photo.jpg",
		"my photo.jpg":         "my_photo.jpg",
		"../../etc/passwd":     "passwd",
		"..\\..\\evil.png":     "evil.png",
		"/abs/path/pic.jpeg":   "pic.jpeg",
		"we`ird$(name).png":    "weirdname.png",
		".hidden.png":          "hidden.png",
		"spaced  name.png":     "spaced__name.png",
		"ünïcode.png":          "ncode.png",
		"..":                   "",
		"...":                  "",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
