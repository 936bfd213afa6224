// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package lang

import "testing"

func TestAlt(t *testing.T) {
	defer func(e, d string) { env, Default = e, d }(env, Default)
	alt := Alt{
		EnUS: "codec daemon",
		FrFR: "démon du codec",
	}
	for _, x := range []struct {
		env, def, want string
	}{
		{FrFR, EnUS, "démon du codec"},
		{DeDE, FrFR, "démon du codec"},
		{DeDE, EnGB, "codec daemon"},
		{EnUS, FrFR, "codec daemon"},
	} {
		env, Default = x.env, x.def
		if got := alt.String(); got != x.want {
			t.Errorf("%s/%s: got %q, want %q", x.env, x.def, got, x.want)
		}
	}
	if got := (Alt{}).String(); got != "" {
		t.Error("wrong:", got)
	}
}
