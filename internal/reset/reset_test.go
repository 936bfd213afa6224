// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package reset

import "testing"

func TestNone(t *testing.T) {
	var line Line = None{}
	if err := line.Assert(); err != nil {
		t.Error(err)
	}
	if err := line.Deassert(); err != nil {
		t.Error(err)
	}
}
