// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"quake2world/cvar"
)

var (
	CmNoAreas *cvar.Cvar
)

func init() {
	// makes every area see every other one
	CmNoAreas = cvar.MustRegister("cm_noareas", "0", cvar.NONE)
}
