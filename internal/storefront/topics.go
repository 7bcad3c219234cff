package storefront

// Topic is an informational link that only acknowledges the click.
type Topic struct {
	Slug    string
	Label   string
	Message string
	Group   string
}

// Topic groups, in footer order.
const (
	GroupAccount  = "account"
	GroupSupport  = "support"
	GroupHosting  = "hosting"
	GroupCompany  = "company"
	GroupSettings = "settings"
	GroupSocial   = "social"
)

func opening(label string) string { return "Opening " + label + "..." }

var topics = []Topic{
	{Slug: "become-host", Label: "Become a host", Message: "Host registration page would open here", Group: GroupAccount},
	{Slug: "host-home", Label: "Host your home", Message: "Host your home page would open here", Group: GroupAccount},
	{Slug: "help", Label: "Help", Message: "Help center would open here", Group: GroupAccount},

	{Slug: "help-center", Label: "Help Center", Message: opening("Help Center"), Group: GroupSupport},
	{Slug: "safety", Label: "Safety Information", Message: opening("Safety Information"), Group: GroupSupport},
	{Slug: "cancellation", Label: "Cancellation Options", Message: opening("Cancellation Options"), Group: GroupSupport},
	{Slug: "covid", Label: "COVID-19 Response", Message: opening("COVID-19 Response"), Group: GroupSupport},

	{Slug: "disaster-relief", Label: "Disaster Relief Housing", Message: opening("Disaster Relief Housing"), Group: GroupHosting},
	{Slug: "diversity", Label: "Diversity & Belonging", Message: opening("Diversity & Belonging"), Group: GroupHosting},
	{Slug: "accessibility", Label: "Accessibility", Message: opening("Accessibility"), Group: GroupHosting},
	{Slug: "try-hosting", Label: "Try Hosting", Message: opening("Try Hosting"), Group: GroupHosting},
	{Slug: "host-cover", Label: "Cover for Hosts", Message: opening("Cover for Hosts"), Group: GroupHosting},
	{Slug: "hosting-resources", Label: "Hosting Resources", Message: opening("Hosting Resources"), Group: GroupHosting},
	{Slug: "community-forum", Label: "Community Forum", Message: opening("Community Forum"), Group: GroupHosting},

	{Slug: "newsroom", Label: "Newsroom", Message: opening("Newsroom"), Group: GroupCompany},
	{Slug: "new-features", Label: "New Features", Message: opening("New Features"), Group: GroupCompany},
	{Slug: "careers", Label: "Careers", Message: opening("Careers"), Group: GroupCompany},
	{Slug: "investors", Label: "Investors", Message: opening("Investors"), Group: GroupCompany},
	{Slug: "privacy", Label: "Privacy Policy", Message: opening("Privacy Policy"), Group: GroupCompany},
	{Slug: "terms", Label: "Terms of Service", Message: opening("Terms of Service"), Group: GroupCompany},
	{Slug: "sitemap", Label: "Sitemap", Message: opening("Sitemap"), Group: GroupCompany},

	{Slug: "language", Label: "English (US)", Message: "Language selector would open here", Group: GroupSettings},
	{Slug: "currency", Label: "$ USD", Message: "Currency selector would open here", Group: GroupSettings},

	{Slug: "facebook", Label: "Facebook", Message: opening("Facebook"), Group: GroupSocial},
	{Slug: "twitter", Label: "Twitter", Message: opening("Twitter"), Group: GroupSocial},
	{Slug: "instagram", Label: "Instagram", Message: opening("Instagram"), Group: GroupSocial},
}

// Topics lists the informational links of a group in display order. An empty group
// lists all of them.
func Topics(group string) []Topic {
	out := make([]Topic, 0, len(topics))
	for _, t := range topics {
		if group == "" || t.Group == group {
			out = append(out, t)
		}
	}
	return out
}

func lookupTopic(slug string) (Topic, bool) {
	for _, t := range topics {
		if t.Slug == slug {
			return t, true
		}
	}
	return Topic{}, false
}
