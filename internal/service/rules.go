package service

import (
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/model"
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/utils"
)

// RuleSetVersion identifies the canonical rule tables below
const RuleSetVersion = "2024.11"

// Tier weights for room scoring
const (
	WeightStrong = 5.0
	WeightMedium = 2.0
	WeightWeak   = 0.5
)

// TierWeights holds the points a matching keyword adds to a room
type TierWeights struct {
	Strong float64 `json:"strong" yaml:"strong"`
	Medium float64 `json:"medium" yaml:"medium"`
	Weak   float64 `json:"weak" yaml:"weak"`
}

// RoomTiers holds the three disjoint indicator sets of one room
type RoomTiers struct {
	Room   model.RoomType   `json:"room" yaml:"room"`
	Strong utils.KeywordSet `json:"strong" yaml:"strong"`
	Medium utils.KeywordSet `json:"medium" yaml:"medium"`
	Weak   utils.KeywordSet `json:"weak" yaml:"weak"`
}

// ClutterRule maps clutter keywords to the reason shown to the user.
// With Exact set the label must equal a keyword, otherwise it must contain one.
type ClutterRule struct {
	Keywords utils.KeywordSet   `json:"keywords" yaml:"keywords"`
	Exact    bool               `json:"exact,omitempty" yaml:"exact,omitempty"`
	Reason   string             `json:"reason" yaml:"reason"`
	Category model.ItemCategory `json:"category" yaml:"category"`
}

// Matches reports whether the rule applies to the label
func (r ClutterRule) Matches(label string) bool {
	if r.Exact {
		return r.Keywords.Contains(label)
	}
	_, ok := r.Keywords.ContainsAny(label)
	return ok
}

// Bucket is the generic label for unrecognized objects in a room
type Bucket struct {
	Name string `json:"name" yaml:"name"`
	Hint string `json:"hint" yaml:"hint"`
}

// StylingTemplate is the fixed staging advice for one room
type StylingTemplate struct {
	Title    string   `json:"title" yaml:"title"`
	Location string   `json:"location" yaml:"location"`
	Tips     []string `json:"tips" yaml:"tips"`
}

// RuleSet is the complete, read-only configuration of the classifier and
// the recommendation engine.
type RuleSet struct {
	Version string      `json:"version" yaml:"version"`
	Weights TierWeights `json:"weights" yaml:"weights"`
	Rooms   []RoomTiers `json:"rooms" yaml:"rooms"`

	FurnitureKeep    utils.KeywordSet `json:"furniture_keep" yaml:"furniture_keep"`
	MovableFurniture utils.KeywordSet `json:"movable_furniture" yaml:"movable_furniture"`
	ClutterItems     utils.KeywordSet `json:"clutter_items" yaml:"clutter_items"`
	ClutterRules     []ClutterRule    `json:"clutter_rules" yaml:"clutter_rules"`
	DefaultClutter   ClutterRule      `json:"default_clutter" yaml:"default_clutter"`

	PriorityClasses utils.KeywordSet                    `json:"priority_classes" yaml:"priority_classes"`
	RoomAdmission   map[model.RoomType]utils.KeywordSet `json:"room_admission" yaml:"room_admission"`

	Buckets       map[model.RoomType]Bucket `json:"buckets" yaml:"buckets"`
	DefaultBucket Bucket                    `json:"default_bucket" yaml:"default_bucket"`

	Styling       map[model.RoomType]StylingTemplate `json:"styling" yaml:"styling"`
	ChairKeywords utils.KeywordSet                   `json:"chair_keywords" yaml:"chair_keywords"`
}

// TiersFor returns the indicator tiers of a scored room
func (rs *RuleSet) TiersFor(room model.RoomType) (RoomTiers, bool) {
	for _, t := range rs.Rooms {
		if t.Room == room {
			return t, true
		}
	}
	return RoomTiers{}, false
}

// DefaultRuleSet builds the canonical rule tables. Each call returns a new
// value, so callers never share maps or slices.
func DefaultRuleSet() *RuleSet {
	kw := utils.NewKeywordSet

	return &RuleSet{
		Version: RuleSetVersion,
		Weights: TierWeights{Strong: WeightStrong, Medium: WeightMedium, Weak: WeightWeak},
		Rooms: []RoomTiers{
			{
				Room:   model.RoomKitchen,
				Strong: kw("oven", "microwave", "refrigerator", "stove", "dishwasher", "sink", "countertop"),
				Medium: kw("toaster", "kettle", "pot", "pan", "glass", "cup", "plate", "bowl", "dish", "bottle", "fork", "spoon", "knife"),
				Weak:   kw("table", "chair", "cabinet", "drawer", "light"),
			},
			{
				Room:   model.RoomBathroom,
				Strong: kw("toilet", "bathtub", "shower", "sink", "mirror"),
				Medium: kw("towel", "toothbrush", "shampoo", "soap", "lotion", "toilet paper", "tissue"),
				Weak:   kw("cabinet", "light", "door"),
			},
			{
				Room:   model.RoomBedroom,
				Strong: kw("bed", "bedspread", "pillow", "blanket", "nightstand", "dresser"),
				Medium: kw("lamp", "mirror", "chair", "desk", "closet", "hanger"),
				Weak:   kw("wall", "floor", "window", "door"),
			},
			{
				Room:   model.RoomLivingRoom,
				Strong: kw("couch", "sofa", "tv", "coffee table", "armchair", "recliner"),
				Medium: kw("lamp", "rug", "picture", "cushion", "throw pillow", "ottoman"),
				Weak:   kw("chair", "table", "wall", "window", "light"),
			},
			{
				Room:   model.RoomDiningRoom,
				Strong: kw("dining table", "chair", "place setting"),
				Medium: kw("plate", "glass", "fork", "knife", "spoon", "napkin", "centerpiece"),
				Weak:   kw("table", "chandelier", "wall", "window"),
			},
		},

		FurnitureKeep: kw(
			"couch", "sofa", "loveseat", "sectional",
			"bed", "king bed", "queen bed",
			"dining table", "table",
			"toilet", "bathtub", "shower",
			"tv", "television",
			"sink", "oven", "refrigerator", "fridge", "stove", "dishwasher",
			"microwave", "washer", "dryer",
			"bookcase", "bookshelf", "cabinet", "wardrobe", "armoire",
			"wall", "door", "window", "ceiling", "floor",
		),
		MovableFurniture: kw(
			"chair", "dining chair", "office chair", "desk chair", "folding chair",
			"stool", "bar stool", "ottoman", "footstool", "pouf",
			"side table", "end table", "nightstand", "accent table",
			"bench", "small table",
		),
		ClutterItems: kw(clutterVocabulary...),
		ClutterRules: []ClutterRule{
			{
				Keywords: kw("person", "dog", "cat", "bird"),
				Reason:   "Buyers focus on the space, not current occupants",
				Category: model.CategoryOccupant,
			},
			{
				Keywords: kw("bottle", "cup", "bowl", "plate", "dish", "glass", "mug", "fork", "knife", "spoon"),
				Reason:   "Clear surfaces make kitchens look spacious and clean",
				Category: model.CategoryMess,
			},
			{
				Keywords: kw("towel", "toothbrush", "soap", "shampoo", "lotion", "makeup", "cosmetics"),
				Reason:   "Bathrooms should look spa-like and depersonalized",
				Category: model.CategoryMess,
			},
			{
				Keywords: kw("pillow", "blanket", "sheet", "clothes", "jacket", "shirt", "pants", "shoes"),
				Reason:   "Bedrooms need minimal styling - less is more",
				Category: model.CategoryMess,
			},
			{
				Keywords: kw("laptop", "phone", "remote", "keyboard", "mouse", "headphones"),
				Reason:   "Electronics create visual clutter and distraction",
				Category: model.CategoryClutter,
			},
			{
				Keywords: kw("paper", "magazine", "document", "mail", "trash", "garbage"),
				Reason:   "Paper clutter and trash makes spaces look busy and unkempt",
				Category: model.CategoryMess,
			},
			{
				Keywords: kw("wire", "cable", "cord", "charger"),
				Reason:   "Visible cables and wires look messy and unprofessional",
				Category: model.CategoryMess,
			},
			{
				Keywords: kw("cleaning", "mop", "broom", "vacuum", "tool"),
				Reason:   "Cleaning supplies and tools should be hidden away",
				Category: model.CategoryMess,
			},
			{
				Keywords: kw("toy", "teddy bear", "doll", "game"),
				Reason:   "Toys distract from the home's features",
				Category: model.CategoryClutter,
			},
			{
				Keywords: kw("photo", "picture"),
				Reason:   "Personal photos should be removed for neutral appeal",
				Category: model.CategoryPersonal,
			},
			{
				Keywords: kw("book"),
				Exact:    true,
				Reason:   "Too many books create visual clutter - limit to 3-5 styled books",
				Category: model.CategoryDecorExcessive,
			},
			{
				Keywords: kw("candle", "flower", "plant", "bouquet"),
				Reason:   "Decor is good, but keep minimal - 1-2 accent pieces per surface",
				Category: model.CategoryDecorCheck,
			},
			{
				Keywords: kw("artwork", "poster", "decoration", "ornament"),
				Reason:   "Evaluate if decor is tasteful and minimal - remove if excessive",
				Category: model.CategoryDecorCheck,
			},
		},
		DefaultClutter: ClutterRule{
			Reason:   "Creates visual clutter - clear for photos",
			Category: model.CategoryClutter,
		},

		PriorityClasses: kw("person", "dog", "cat", "bottle", "cup", "bowl", "phone", "laptop"),
		RoomAdmission: map[model.RoomType]utils.KeywordSet{
			model.RoomKitchen:  kw("cup", "plate", "bowl", "bottle", "fork", "knife", "spoon"),
			model.RoomBathroom: kw("towel", "toothbrush", "soap", "tissue"),
			model.RoomBedroom:  kw("pillow", "blanket", "clothes"),
		},

		Buckets: map[model.RoomType]Bucket{
			model.RoomKitchen:  {Name: "Kitchen clutter", Hint: "Dishes, bottles, or items on surfaces"},
			model.RoomBathroom: {Name: "Bathroom items", Hint: "Toiletries, bottles, or personal items"},
			model.RoomBedroom:  {Name: "Bedroom clutter", Hint: "Clothes, items on surfaces, or personal belongings"},
		},
		DefaultBucket: Bucket{Name: "Visible clutter", Hint: "Remove this object"},

		Styling:       defaultStyling(),
		ChairKeywords: kw("chair", "stool"),
	}
}

// clutterVocabulary lists every object that is easy to move out of frame.
// Large furniture is handled by FurnitureKeep and MovableFurniture first.
var clutterVocabulary = []string{
	// People and pets
	"person", "people", "human", "man", "woman", "child", "kid", "baby",
	"dog", "cat", "bird", "pet", "animal",

	// Personal belongings
	"backpack", "handbag", "suitcase", "umbrella", "tie", "bag", "purse", "wallet", "jacket", "coat", "sweater", "shirt", "pants", "shoes",
	"briefcase", "luggage", "duffel bag", "tote bag", "shoulder bag", "crossbody bag", "messenger bag",
	"scarf", "hat", "cap", "beanie", "gloves", "socks", "underwear",
	"vest", "hoodie", "sweatshirt", "cardigan", "blazer", "dress", "skirt", "shorts", "jeans",
	"sneakers", "boot", "sandal", "slipper", "heel", "loafer", "flip flop",

	// Electronics
	"cell phone", "mobile phone", "smartphone", "iphone", "android", "remote", "laptop", "notebook",
	"keyboard", "mouse", "monitor", "display", "screen", "phone", "tablet", "ipad", "computer",
	"desktop", "workstation", "headphones", "earbuds", "speaker", "bluetooth speaker", "camera",
	"webcam", "printer", "scanner", "router", "modem", "charger", "power bank", "cable",
	"cord", "wire", "extension cord", "power cord", "adapter", "hub", "dock",

	// Dishes, cutlery, cookware
	"bottle", "wine glass", "cup", "fork", "knife", "spoon", "bowl", "pot", "pan",
	"plate", "dish", "glass", "mug", "utensil", "cutlery", "silverware", "dinnerware", "flatware",
	"drinking glass", "coffee cup", "tea cup", "saucer", "platter", "pitcher", "kettle", "teapot",
	"container", "tupperware", "jar", "lid", "sauce", "condiment", "spice", "seasoning",
	"baking tray", "cookie sheet", "cake pan", "baking pan", "mixing bowl", "colander", "strainer",
	"cutting board", "knife block", "spatula", "wooden spoon", "ladle", "whisk", "grater",
	"can opener", "bottle opener", "corkscrew", "measuring cup", "measuring spoon",

	// Food and drink
	"banana", "apple", "sandwich", "orange", "broccoli", "carrot", "hot dog", "pizza", "donut", "cake",
	"food", "fruit", "vegetable", "meat", "bread", "cheese", "milk", "drink", "juice", "soda",
	"coffee", "tea", "beer", "wine", "alcohol", "snack", "chip", "cookie", "candy", "chocolate",

	// Sports equipment
	"sports ball", "baseball bat", "tennis racket", "frisbee", "skateboard", "surfboard", "skis", "snowboard",
	"bicycle", "bike", "tricycle", "scooter", "roller skate",
	"weights", "dumbbell", "barbell", "kettlebell", "yoga mat", "exercise ball", "foam roller",
	"resistance band", "jump rope", "boxing glove", "baseball glove", "football", "soccer ball",
	"basketball", "tennis ball", "golf ball", "bowling ball", "ping pong", "shuttlecock",

	// Toys
	"teddy bear", "kite", "toy", "doll", "game", "puzzle", "lego", "action figure",
	"toy train", "toy car", "toy plane", "toy block", "bouncy ball", "toy animal",

	// Bathroom and personal care
	"toothbrush", "toothpaste", "shampoo", "soap", "lotion", "cosmetics", "makeup",
	"towel", "bath towel", "hand towel", "washcloth", "face washer", "bath mat", "shower curtain", "bathroom mat", "rug",
	"hair drier", "hair dryer", "blow dryer", "brush", "comb", "hair brush", "paddle brush",
	"razor", "safety razor", "perfume", "cologne", "deodorant", "antiperspirant",
	"tissue", "tissue box", "cotton", "cotton ball", "cotton pad", "q-tip", "qtip",
	"lipstick", "foundation", "concealer", "eyeshadow", "eyeliner", "mascara",
	"bathroom accessories", "toiletries", "bath products", "shower gel", "body wash", "moisturizer",
	"soap dispenser", "lotion pump", "toothbrush holder", "bathroom caddy", "shower caddy",

	// Bedding and bedroom storage
	"pillow", "blanket", "sheet", "comforter", "bedspread", "duvet", "mattress", "pillow case", "pillowcase",
	"nightstand", "dresser", "chest", "closet", "wardrobe", "hanger", "coat hanger", "shoe rack",
	"bed frame", "headboard", "footboard", "bed skirt",

	// Living room soft furnishings
	"cushion", "throw pillow", "throw blanket", "couch throw", "ottoman", "footstool", "pouf",
	"side table", "end table", "coffee table", "armchair", "recliner", "accent chair",

	// Office and desk
	"scissors", "pen", "pencil", "marker", "crayon", "colored pencil",
	"paper", "document", "mail", "magazine", "newspaper", "journal", "notepad",
	"clipboard", "folder", "binder", "stapler", "tape", "glue",
	"desk lamp", "desk organizer", "pen holder", "pencil holder", "sticky note", "post-it",

	// Storage
	"box", "basket", "pouch", "case", "storage box", "plastic bin",
	"drawer organizer", "shelf organizer", "closet organizer", "under bed storage",

	// Wall decor
	"picture", "photo", "poster", "artwork", "frame", "framed art", "wall art", "wall decor",
	"mirror", "wall mirror", "floor mirror", "decorative mirror",

	// Decorative items
	"candle", "decoration", "ornament", "figurine", "statue", "sculpture",
	"flower", "plant", "flowers", "bouquet", "vase", "flower vase", "potted plant",
	"book", "bookcase", "bookshelf", "book rack", "books",
	"mat", "carpet", "area rug", "runner rug", "door mat",
	"lamp", "table lamp", "floor lamp", "accent lamp", "string light", "fairy light",

	// Cleaning and tools
	"trash", "garbage", "waste", "recycling", "trash can", "garbage can", "recycling bin",
	"cleaning", "supplies", "mop", "broom", "vacuum", "duster", "sponge",
	"cleaner", "bleach", "disinfectant", "wipes", "paper towel", "towel dispenser",
	"tool", "tools", "toolbox", "hammer", "screwdriver", "wrench", "pliers", "drill",
	"paint", "paintbrush", "paint roller", "paint can",

	// Miscellaneous
	"clothing", "laundry", "clothes", "clothes hanger", "clothesline",
	"sign", "sticker", "label", "flyer",
	"package", "packaging", "wrapping", "cardboard", "packing material",
	"garland", "wreath", "banner", "bunting",
}
