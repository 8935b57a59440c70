package schema

// Target object property keys.
const (
	KeyMeshType                   = "mesh_type"
	KeyPlaneType                  = "plane_type"
	KeyPortalType                 = "portal_type"
	KeyPortalAIDeafening          = "portal_ai_deafening"
	KeyPortalBlocksSounds         = "portal_blocks_sounds"
	KeyPortalIsDoor               = "portal_is_door"
	KeyPoopLighting               = "poop_lighting"
	KeyPoopPathfinding            = "poop_pathfinding"
	KeyPoopRenderOnly             = "poop_render_only"
	KeyPoopChopsPortals           = "poop_chops_portals"
	KeyPoopDoesNotBlockAOE        = "poop_does_not_block_aoe"
	KeyPoopExcludedFromLightprobe = "poop_excluded_from_lightprobe"
	KeyDecalOffset                = "decal_offset"
)

// Target scene property keys.
const (
	KeyAssetType = "asset_type"
)

// Target face property keys.
const (
	KeyFaceType                 = "face_type"
	KeyFaceMode                 = "face_mode"
	KeyFaceGlobalMaterial       = "face_global_material"
	KeySkyPermutationIndex      = "sky_permutation_index"
	KeyTwoSided                 = "two_sided"
	KeyTransparent              = "transparent"
	KeyPrecisePosition          = "precise_position"
	KeyLadder                   = "ladder"
	KeyNoShadow                 = "no_shadow"
	KeySlipSurface              = "slip_surface"
	KeyGroupTransparentsByPlane = "group_transparents_by_plane"
	KeyNoLightmap               = "no_lightmap"
	KeyNoPVS                    = "no_pvs"

	KeyEmissiveColor        = "material_lighting_emissive_color"
	KeyEmissivePower        = "material_lighting_emissive_power"
	KeyEmissiveQuality      = "material_lighting_emissive_quality"
	KeyEmissiveFocus        = "material_lighting_emissive_focus"
	KeyEmissivePerUnit      = "material_lighting_emissive_per_unit"
	KeyAttenuationFalloff   = "material_lighting_attenuation_falloff"
	KeyAttenuationCutoff    = "material_lighting_attenuation_cutoff"
	KeyUseShaderGel         = "material_lighting_use_shader_gel"
	KeyAdditiveTransparency = "lightmap_additive_transparency"
	KeyTranslucencyTint     = "lightmap_translucency_tint_color"
	KeyLightmapResolution   = "lightmap_resolution_scale"
)

// Mesh types.
const (
	MeshTypeDefault   = "_connected_geometry_mesh_type_default"
	MeshTypeStructure = "_connected_geometry_mesh_type_structure"
	MeshTypePlane     = "_connected_geometry_mesh_type_plane"
	MeshTypePoop      = "_connected_geometry_mesh_type_poop"
)

// Plane types.
const (
	PlaneTypePortal       = "_connected_geometry_plane_type_portal"
	PlaneTypeWaterSurface = "_connected_geometry_plane_type_water_surface"
	PlaneTypeFogVolume    = "_connected_geometry_plane_type_planar_fog_volume"
)

// Portal types.
const (
	PortalTypeTwoWay = "_connected_geometry_portal_type_two_way"
	PortalTypeOneWay = "_connected_geometry_portal_type_one_way"
	PortalTypeNoWay  = "_connected_geometry_portal_type_no_way"
)

// Face types.
const (
	FaceTypeSky        = "_connected_geometry_face_type_sky"
	FaceTypeSeamSealer = "_connected_geometry_face_type_seam_sealer"
)

// Face modes.
const (
	FaceModeRenderOnly          = "_connected_geometry_face_mode_render_only"
	FaceModeCollisionOnly       = "_connected_geometry_face_mode_collision_only"
	FaceModeSphereCollisionOnly = "_connected_geometry_face_mode_sphere_collision_only"
	FaceModeShadowOnly          = "_connected_geometry_face_mode_shadow_only"
	FaceModeLightmapOnly        = "_connected_geometry_face_mode_lightmap_only"
	FaceModeBreakable           = "_connected_geometry_face_mode_breakable"
)

// Instance geometry lighting and pathfinding policies.
const (
	PoopLightingDefault   = "_connected_geometry_poop_lighting_default"
	PoopLightingPerPixel  = "_connected_geometry_poop_lighting_per_pixel"
	PoopLightingPerVertex = "_connected_geometry_poop_lighting_per_vertex"

	PoopPathfindingCutout = "_connected_poop_instance_pathfinding_policy_cutout"
	PoopPathfindingNone   = "_connected_poop_instance_pathfinding_policy_none"
	PoopPathfindingStatic = "_connected_poop_instance_pathfinding_policy_static"
)

// AssetTypeScenario is the asset type of level geometry.
const AssetTypeScenario = "SCENARIO"

// Lightmap resolution scale range accepted by the target schema.
const (
	LightmapResolutionMin     = 0
	LightmapResolutionMax     = 7
	LightmapResolutionDefault = 3
)
