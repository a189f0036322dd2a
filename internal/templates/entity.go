// SPDX-License-Identifier: MPL-2.0

package templates

import (
	"strconv"
	"strings"
)

// EntityKind selects a scripted-entity scaffold.
type EntityKind int

const (
	// EntityBasic is an anim entity initialized for VPHYSICS.
	EntityBasic EntityKind = iota
	// EntityNPC is an ai entity with humanoid hull defaults.
	EntityNPC
)

// String returns the label shown when choosing a kind.
func (k EntityKind) String() string {
	if k == EntityNPC {
		return "NPC"
	}
	return "Basic physics entity"
}

// EntityData fills the scaffold placeholders.
type EntityData struct {
	PrintName string
	Category  string
	Author    string
	Model     string
	Spawnable bool
}

// EntityFiles renders the three Lua files of a scripted entity, keyed by
// file name.
func EntityFiles(kind EntityKind, data EntityData) map[string]string {
	cl, sv, sh := entityBasicClient, entityBasicServer, entityBasicShared
	if kind == EntityNPC {
		cl, sv, sh = entityNPCClient, entityNPCServer, entityNPCShared
	}
	r := strings.NewReplacer(
		"%PRINTNAME%", data.PrintName,
		"%CATEGORY%", data.Category,
		"%AUTHOR%", data.Author,
		"%MODEL%", data.Model,
		"%SPAWNABLE%", strconv.FormatBool(data.Spawnable),
	)
	return map[string]string{
		"cl_init.lua": r.Replace(cl),
		"init.lua":    r.Replace(sv),
		"shared.lua":  r.Replace(sh),
	}
}

const entityBasicClient = `include("shared.lua")

function ENT:Initialize()

end
`

const entityBasicServer = `AddCSLuaFile("cl_init.lua")
AddCSLuaFile("shared.lua")
include("shared.lua")

function ENT:Initialize()
	self:SetModel("%MODEL%")
	self:PhysicsInit(SOLID_VPHYSICS)
	self:SetMoveType(MOVETYPE_VPHYSICS)
	self:SetSolid(SOLID_VPHYSICS)
	self:SetUseType(SIMPLE_USE)
end
`

const entityBasicShared = `ENT.Type = "anim"
ENT.Base = "base_anim"

ENT.PrintName = "%PRINTNAME%"
ENT.Category = "%CATEGORY%"
ENT.Author = "%AUTHOR%"
ENT.Spawnable = %SPAWNABLE%
`

const entityNPCClient = `include("shared.lua")

function ENT:Initialize()

end
`

const entityNPCServer = `AddCSLuaFile("cl_init.lua")
AddCSLuaFile("shared.lua")
include("shared.lua")

function ENT:Initialize()
	self:SetModel("%MODEL%")
	self:SetSolid(SOLID_BBOX)
	self:SetHullSizeNormal()
	self:SetNPCState(NPC_STATE_IDLE)
	self:SetHullType(HULL_HUMAN)
	self:SetUseType(SIMPLE_USE)
	self:CapabilitiesAdd(CAP_ANIMATEDFACE)
	self:CapabilitiesAdd(CAP_TURN_HEAD)
	self:DropToFloor()
end

function ENT:Use(activator)

	if not activator:IsPlayer() then return end

end
`

const entityNPCShared = `ENT.Type = "ai"
ENT.Base = "base_ai"

ENT.PrintName = "%PRINTNAME%"
ENT.Category = "%CATEGORY%"
ENT.Author = "%AUTHOR%"
ENT.Spawnable = %SPAWNABLE%

ENT.RenderGroup = RENDERGROUP_TRANSLUCENT
ENT.AutomaticFrameAdvance = true
`
