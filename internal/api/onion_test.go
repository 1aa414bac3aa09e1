package api

import "testing"

func TestIsOnionURL(t *testing.T) {
	onion := []string{
		"http://spore64i5sofqlfz5gq2ju4msgzojjwifls7rok2cti624zyq3fcelad.onion/v2/",
		"https://www.facebookcorewwwi.onion/",
	}
	for _, u := range onion {
		if !IsOnionURL(u) {
			t.Errorf("expected %q to be detected as onion", u)
		}
	}

	clearnet := []string{
		"http://domain.com",
		"domain.com",
		"http://onion.domain.com/.onion/",
		"http://me.me/file.onion/",
		"http://me.me/file.onion",
		"",
	}
	for _, u := range clearnet {
		if IsOnionURL(u) {
			t.Errorf("expected %q to be detected as non-onion", u)
		}
	}
}
