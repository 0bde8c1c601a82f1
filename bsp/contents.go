// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

// Brush and leaf contents. Lower bits are visible contents, higher bits
// are not.
const (
	ContentsSolid  = 0x1 // an eye is never valid in a solid
	ContentsWindow = 0x2 // translucent, but not watery
	ContentsAux    = 0x4
	ContentsLava   = 0x8
	ContentsSlime  = 0x10
	ContentsWater  = 0x20
	ContentsMist   = 0x40

	ContentsAreaPortal  = 0x8000
	ContentsPlayerClip  = 0x10000
	ContentsMonsterClip = 0x20000
	ContentsCurrent0    = 0x40000
	ContentsCurrent90   = 0x80000
	ContentsCurrent180  = 0x100000
	ContentsCurrent270  = 0x200000
	ContentsCurrentUp   = 0x400000
	ContentsCurrentDown = 0x800000
	ContentsOrigin      = 0x1000000 // removed during bsp stage
	ContentsMonster     = 0x2000000 // should never be on a brush, only in game
	ContentsDeadMonster = 0x4000000
	ContentsDetail      = 0x8000000 // brushes to be added after vis leafs
	ContentsTranslucent = 0x10000000
	ContentsLadder      = 0x20000000
)

const (
	ContentsMaskAll         = -1
	ContentsMaskSolid       = ContentsSolid | ContentsWindow
	ContentsMaskPlayerSolid = ContentsSolid | ContentsPlayerClip | ContentsWindow | ContentsMonster
	ContentsMaskLiquid      = ContentsWater | ContentsLava | ContentsSlime
	ContentsMaskShot        = ContentsSolid | ContentsMonster | ContentsWindow | ContentsDeadMonster
)

// Surface flags, carried on texinfo.
const (
	SurfLight     = 0x1 // value will hold the light strength
	SurfSlick     = 0x2 // effects game physics
	SurfSky       = 0x4
	SurfWarp      = 0x8
	SurfBlend33   = 0x10
	SurfBlend66   = 0x20
	SurfFlowing   = 0x40
	SurfNoDraw    = 0x80
	SurfHint      = 0x100
	SurfSkip      = 0x200
	SurfAlphaTest = 0x400
	SurfPhong     = 0x800
	SurfMaterial  = 0x1000
)
