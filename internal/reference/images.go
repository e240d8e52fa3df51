package reference

// DefaultImage is returned for destinations without a dedicated picture
const DefaultImage = "https://images.unsplash.com/photo-1436491865332-7a61a109cc05?w=400&h=250&fit=crop&q=80"

var destinationImages = map[string]string{
	"Paris":         "https://images.unsplash.com/photo-1499856871958-5b9627545d1a?w=400&h=250&fit=crop&q=80",
	"Tokyo":         "https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?w=400&h=250&fit=crop&q=80",
	"Rome":          "https://images.unsplash.com/photo-1552832230-c0197dd311b5?w=400&h=250&fit=crop&q=80",
	"London":        "https://images.unsplash.com/photo-1513635269975-59663e0ac1ad?w=400&h=250&fit=crop&q=80",
	"Dubai":         "https://images.unsplash.com/photo-1512453979798-5ea266f8880c?w=400&h=250&fit=crop&q=80",
	"New York":      "https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9?w=400&h=250&fit=crop&q=80",
	"Barcelona":     "https://images.unsplash.com/photo-1583422409516-2895a77efded?w=400&h=250&fit=crop&q=80",
	"Sydney":        "https://images.unsplash.com/photo-1506973035872-a4ec16b8e8d9?w=400&h=250&fit=crop&q=80",
	"Singapore":     "https://images.unsplash.com/photo-1525625293386-3f8f99389edd?w=400&h=250&fit=crop&q=80",
	"Amsterdam":     "https://images.unsplash.com/photo-1534351590666-13e3e96b5017?w=400&h=250&fit=crop&q=80",
	"Bangkok":       "https://images.unsplash.com/photo-1508009603885-50cf7c579365?w=400&h=250&fit=crop&q=80",
	"Seoul":         "https://images.unsplash.com/photo-1546874177-9e664107314e?w=400&h=250&fit=crop&q=80",
	"Istanbul":      "https://images.unsplash.com/photo-1524231757912-21f4fe3a7200?w=400&h=250&fit=crop&q=80",
	"Hong Kong":     "https://images.unsplash.com/photo-1536599018102-9f803c140fc1?w=400&h=250&fit=crop&q=80",
	"Los Angeles":   "https://images.unsplash.com/photo-1534190760961-74e8c1c5c3da?w=400&h=250&fit=crop&q=80",
	"Miami":         "https://images.unsplash.com/photo-1506966953602-c20cc11f75e3?w=400&h=250&fit=crop&q=80",
	"San Francisco": "https://images.unsplash.com/photo-1501594907352-04cda38ebc29?w=400&h=250&fit=crop&q=80",
	"Chicago":       "https://images.unsplash.com/photo-1494522855154-9297ac14b55f?w=400&h=250&fit=crop&q=80",
	"Toronto":       "https://images.unsplash.com/photo-1517090504586-fde19ea6066f?w=400&h=250&fit=crop&q=80",
	"Frankfurt":     "https://images.unsplash.com/photo-1467269204594-9661b134dd2b?w=400&h=250&fit=crop&q=80",
	"Maldives":      "https://images.unsplash.com/photo-1514282401047-d79a71a590e8?w=600&h=400&fit=crop&q=80",
	"Swiss Alps":    "https://images.unsplash.com/photo-1476514525535-07fb3b4ae5f1?w=600&h=400&fit=crop&q=80",
	"Santorini":     "https://images.unsplash.com/photo-1570077188670-e3a8d69ac5ff?w=600&h=400&fit=crop&q=80",
	"Bali":          "https://images.unsplash.com/photo-1537996194471-e657df975ab4?w=600&h=400&fit=crop&q=80",
}

// DestinationImage returns the picture for a destination city, or DefaultImage
func DestinationImage(city string) string {
	if url, ok := destinationImages[city]; ok {
		return url
	}
	return DefaultImage
}
