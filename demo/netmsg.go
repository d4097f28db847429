package demo

// NetMessage identifies a net-message tag within a SIGN_ON/PACKET
// frame body: the NET_*/SVC_* namespace `original_source/csgopp`'s
// `network.h` enumerates (spec.md §6.2 supplement). Every value listed
// here is a *known* tag (never the "unknown net message" fatal error);
// most bodies below svc_PacketEntities/svc_GameEvent/svc_GameEventList
// /svc_SendTable/svc_CreateStringTable/svc_UpdateStringTable are read
// via the substream's byte limit and discarded without interpretation
// — voice data, sounds, temp entities, and other HLTV/visualization-only
// payloads are Non-goals (spec.md §1).
type NetMessage int

const (
	NetNOP               NetMessage = 0
	NetDisconnect        NetMessage = 1
	NetFile              NetMessage = 2
	NetSplitScreenUser   NetMessage = 3
	NetTick              NetMessage = 4
	NetStringCmd         NetMessage = 5
	NetSetConVar         NetMessage = 6
	NetSignonState       NetMessage = 7
	SvcServerInfo        NetMessage = 8
	SvcSendTable         NetMessage = 9
	SvcClassInfo         NetMessage = 10
	SvcSetPause          NetMessage = 11
	SvcCreateStringTable NetMessage = 12
	SvcUpdateStringTable NetMessage = 13
	SvcVoiceInit         NetMessage = 14
	SvcVoiceData         NetMessage = 15
	SvcPrint             NetMessage = 16
	SvcSounds            NetMessage = 17
	SvcSetView           NetMessage = 18
	SvcFixAngle          NetMessage = 19
	SvcCrosshairAngle    NetMessage = 20
	SvcBSPDecal          NetMessage = 21
	SvcSplitScreen       NetMessage = 22
	SvcUserMessage       NetMessage = 23
	SvcEntityMessage     NetMessage = 24
	SvcGameEvent         NetMessage = 25
	SvcPacketEntities    NetMessage = 26
	SvcTempEntities      NetMessage = 27
	SvcPrefetch          NetMessage = 28
	SvcMenu              NetMessage = 29
	SvcGameEventList     NetMessage = 30
	SvcGetCvarValue      NetMessage = 31
	SvcPaintmapData      NetMessage = 33
	SvcCmdKeyValues      NetMessage = 34
	SvcEncryptedData     NetMessage = 35
	SvcHltvReplay        NetMessage = 36
	SvcBroadcastCommand  NetMessage = 38
	NetPlayerAvatarData  NetMessage = 100
)

var netMessageNames = map[NetMessage]string{
	NetNOP:               "net_NOP",
	NetDisconnect:        "net_Disconnect",
	NetFile:              "net_File",
	NetSplitScreenUser:   "net_SplitScreenUser",
	NetTick:              "net_Tick",
	NetStringCmd:         "net_StringCmd",
	NetSetConVar:         "net_SetConVar",
	NetSignonState:       "net_SignonState",
	SvcServerInfo:        "svc_ServerInfo",
	SvcSendTable:         "svc_SendTable",
	SvcClassInfo:         "svc_ClassInfo",
	SvcSetPause:          "svc_SetPause",
	SvcCreateStringTable: "svc_CreateStringTable",
	SvcUpdateStringTable: "svc_UpdateStringTable",
	SvcVoiceInit:         "svc_VoiceInit",
	SvcVoiceData:         "svc_VoiceData",
	SvcPrint:             "svc_Print",
	SvcSounds:            "svc_Sounds",
	SvcSetView:           "svc_SetView",
	SvcFixAngle:          "svc_FixAngle",
	SvcCrosshairAngle:    "svc_CrosshairAngle",
	SvcBSPDecal:          "svc_BSPDecal",
	SvcSplitScreen:       "svc_SplitScreen",
	SvcUserMessage:       "svc_UserMessage",
	SvcEntityMessage:     "svc_EntityMessage",
	SvcGameEvent:         "svc_GameEvent",
	SvcPacketEntities:    "svc_PacketEntities",
	SvcTempEntities:      "svc_TempEntities",
	SvcPrefetch:          "svc_Prefetch",
	SvcMenu:              "svc_Menu",
	SvcGameEventList:     "svc_GameEventList",
	SvcGetCvarValue:      "svc_GetCvarValue",
	SvcPaintmapData:      "svc_PaintmapData",
	SvcCmdKeyValues:      "svc_CmdKeyValues",
	SvcEncryptedData:     "svc_EncryptedData",
	SvcHltvReplay:        "svc_HltvReplay",
	SvcBroadcastCommand:  "svc_Broadcast_Command",
	NetPlayerAvatarData:  "net_PlayerAvatarData",
}

func (m NetMessage) String() string {
	if s, ok := netMessageNames[m]; ok {
		return s
	}
	return "NetMessage(?)"
}

func (m NetMessage) known() bool {
	_, ok := netMessageNames[m]
	return ok
}
