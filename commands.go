// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"quake2world/bsp"
	"quake2world/cmodel"
	"quake2world/config"
	"quake2world/conlog"
	"quake2world/cvar"
	"quake2world/cvars"
	"quake2world/filesystem"
	"quake2world/math/vec"
)

var world = cmodel.NewWorld()

// setupAction applies config, flags and logging before any command runs.
func setupAction(c *cli.Context) error {
	if err := config.Load(c.String(flagConfig)); err != nil {
		return err
	}
	for flag, key := range map[string]string{
		flagBaseDir:  "basedir",
		flagGame:     "game",
		flagLogLevel: "logLevel",
	} {
		if c.IsSet(flag) {
			config.Set(key, c.String(flag))
		}
	}
	if c.IsSet(flagNoAreas) {
		config.Set("noAreas", c.Bool(flagNoAreas))
	}

	level, err := conlog.ParseLevel(config.GetString("logLevel"))
	if err != nil {
		return err
	}
	conlog.SetLogger(conlog.New(os.Stderr, level))

	cvar.ResetAll()
	if config.GetBool("noAreas") {
		cvars.CmNoAreas.SetByString("1")
	}
	for _, kv := range c.StringSlice(flagSet) {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return errors.Errorf("--%s %q: want name=value", flagSet, kv)
		}
		if !cvar.Set(name, value) {
			return errors.Errorf("unknown cvar %q", name)
		}
	}

	filesystem.UseBaseDir(config.GetString("basedir"))
	filesystem.UseGameDir(config.GetString("game"))
	conlog.DPrintf("game dir %s, search path: %s", filesystem.GameDir(), strings.Join(filesystem.SearchPath(), ", "))
	return nil
}

// mapPath turns "base1" into "maps/base1.bsp".
func mapPath(name string) string {
	if filesystem.Ext(name) != ".bsp" {
		name = filesystem.StripExt(name) + ".bsp"
	}
	if !strings.ContainsAny(name, `/\`) {
		name = "maps/" + name
	}
	return name
}

// loadMap reads the map named by the first argument, from the search
// path or, failing that, from the OS.
func loadMap(c *cli.Context) (*cmodel.Model, error) {
	if c.NArg() < 1 {
		return nil, errors.New("missing map name")
	}
	arg := c.Args().First()
	name := mapPath(arg)
	data, err := filesystem.ReadFile(name)
	if os.IsNotExist(err) {
		name = arg
		data, err = os.ReadFile(arg)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", arg)
	}
	conlog.DPrintf("loading %s (%d bytes)", name, len(data))
	return world.Load(name, data)
}

func parseVec(s []string) (vec.Vec3, error) {
	var v vec.Vec3
	if len(s) != 3 {
		return v, errors.Errorf("want 3 coordinates, got %d", len(s))
	}
	for i, f := range s {
		x, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return v, errors.Wrapf(err, "coordinate %d", i)
		}
		v[i] = float32(x)
	}
	return v, nil
}

func vecFlag(c *cli.Context, name string) (vec.Vec3, error) {
	v, err := parseVec(strings.Fields(c.String(name)))
	return v, errors.Wrapf(err, "--%s", name)
}

func vecArgs(c *cli.Context, first int) (vec.Vec3, error) {
	args := c.Args().Slice()
	if len(args) < first+3 {
		return vec.Vec3{}, errors.Errorf("missing coordinates, see %s --help", c.Command.Name)
	}
	return parseVec(args[first : first+3])
}

var masks = map[string]int32{
	"all":         bsp.ContentsMaskAll,
	"solid":       bsp.ContentsMaskSolid,
	"playersolid": bsp.ContentsMaskPlayerSolid,
	"liquid":      bsp.ContentsMaskLiquid,
	"shot":        bsp.ContentsMaskShot,
}

func parseMask(s string) (int32, error) {
	if m, ok := masks[strings.ToLower(s)]; ok {
		return m, nil
	}
	m, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "mask %q", s)
	}
	return int32(m), nil
}

// placement is the head node and transform of the model a query runs
// against.
type placement struct {
	headNode       int
	origin, angles vec.Vec3
}

func modelPlacement(c *cli.Context, m *cmodel.Model) (placement, error) {
	var p placement
	sm := m.World()
	if name := c.String(flagModel); name != "" {
		var err error
		if sm, err = m.InlineModel(name); err != nil {
			return p, err
		}
	}
	p.headNode = sm.HeadNode
	var err error
	if p.origin, err = vecFlag(c, flagOrigin); err != nil {
		return p, err
	}
	if p.angles, err = vecFlag(c, flagAngles); err != nil {
		return p, err
	}
	return p, nil
}

func infoAction(c *cli.Context) error {
	m, err := loadMap(c)
	if err != nil {
		return err
	}
	info := map[string]interface{}{
		"name":     m.Name(),
		"id":       m.ID().String(),
		"bytes":    m.Size(),
		"models":   m.NumModels(),
		"leafs":    m.NumLeafs(),
		"clusters": m.NumClusters(),
		"areas":    m.NumAreas(),
		"entities": len(m.Entities()),
	}
	if c.Bool(flagJSON) {
		s, err := structpb.NewStruct(info)
		if err != nil {
			return errors.Wrap(err, "converting map info")
		}
		b, err := protojson.MarshalOptions{Multiline: true}.Marshal(s)
		if err != nil {
			return errors.Wrap(err, "marshaling map info")
		}
		fmt.Fprintln(c.App.Writer, string(b))
		return nil
	}
	for _, k := range []string{"name", "id", "bytes", "models", "leafs", "clusters", "areas", "entities"} {
		fmt.Fprintf(c.App.Writer, "%-9s %v\n", k, info[k])
	}
	return nil
}

func contentsAction(c *cli.Context) error {
	m, err := loadMap(c)
	if err != nil {
		return err
	}
	p, err := vecArgs(c, 1)
	if err != nil {
		return err
	}
	pl, err := modelPlacement(c, m)
	if err != nil {
		return err
	}
	contents := m.TransformedPointContents(p, pl.headNode, pl.origin, pl.angles)
	fmt.Fprintf(c.App.Writer, "contents 0x%x\n", contents)
	if c.String(flagModel) != "" {
		return nil
	}
	leaf := m.PointLeafnum(p)
	cluster, err := m.LeafCluster(leaf)
	if err != nil {
		return err
	}
	area, err := m.LeafArea(leaf)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "leaf %d cluster %d area %d\n", leaf, cluster, area)
	return nil
}

func traceAction(c *cli.Context) error {
	m, err := loadMap(c)
	if err != nil {
		return err
	}
	start, err := vecArgs(c, 1)
	if err != nil {
		return err
	}
	end, err := vecArgs(c, 4)
	if err != nil {
		return err
	}
	mins, err := vecFlag(c, flagMins)
	if err != nil {
		return err
	}
	maxs, err := vecFlag(c, flagMaxs)
	if err != nil {
		return err
	}
	mask, err := parseMask(c.String(flagMask))
	if err != nil {
		return err
	}
	pl, err := modelPlacement(c, m)
	if err != nil {
		return err
	}

	tr := m.TransformedBoxTrace(start, end, mins, maxs, pl.headNode, mask, pl.origin, pl.angles)
	w := c.App.Writer
	fmt.Fprintf(w, "fraction   %g\n", tr.Fraction)
	fmt.Fprintf(w, "end        %g %g %g\n", tr.End[0], tr.End[1], tr.End[2])
	fmt.Fprintf(w, "startsolid %v\n", tr.StartSolid)
	fmt.Fprintf(w, "allsolid   %v\n", tr.AllSolid)
	if tr.Fraction < 1 {
		n := tr.Plane.Normal
		fmt.Fprintf(w, "normal     %g %g %g\n", n[0], n[1], n[2])
		fmt.Fprintf(w, "contents   0x%x\n", tr.Contents)
		if tr.Surface != nil {
			fmt.Fprintf(w, "surface    %s (flags 0x%x)\n", tr.Surface.Name, tr.Surface.Flags)
		}
		fmt.Fprintf(w, "leaf       %d\n", tr.LeafNum)
	}
	return nil
}

func pvsAction(c *cli.Context) error {
	m, err := loadMap(c)
	if err != nil {
		return err
	}
	if c.NArg() < 2 {
		return errors.New("missing cluster")
	}
	cluster, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return errors.Wrap(err, "cluster")
	}
	row := m.ClusterPVS(cluster)
	if c.Bool(flagPHS) {
		row = m.ClusterPHS(cluster)
	}
	var visible []string
	for i := 0; i < m.NumClusters(); i++ {
		if row[i>>3]&(1<<(i&7)) != 0 {
			visible = append(visible, strconv.Itoa(i))
		}
	}
	fmt.Fprintf(c.App.Writer, "%x\n%d of %d clusters: %s\n",
		row, len(visible), m.NumClusters(), strings.Join(visible, " "))
	return nil
}

func areasAction(c *cli.Context) error {
	m, err := loadMap(c)
	if err != nil {
		return err
	}
	for _, p := range c.IntSlice(flagOpen) {
		if err := m.SetAreaPortalState(p, true); err != nil {
			return err
		}
	}
	for a := 1; a < m.NumAreas(); a++ {
		var connected []string
		for b := 1; b < m.NumAreas(); b++ {
			if b != a && m.AreasConnected(a, b) {
				connected = append(connected, strconv.Itoa(b))
			}
		}
		fmt.Fprintf(c.App.Writer, "area %d bits %x connected: %s\n",
			a, m.WriteAreaBits(a), strings.Join(connected, " "))
	}
	return nil
}

func cvarsAction(c *cli.Context) error {
	for _, cv := range cvar.All() {
		fmt.Fprintf(c.App.Writer, "%s %s %q (default %q)\n", cv.Flags(), cv.Name(), cv.String(), cv.DefaultValue())
	}
	return nil
}
