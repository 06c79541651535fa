package objgen

import (
	"github.com/beevik/etree"
)

// account is a persistent object, written the way the generator's output
// implements the contract.
type account struct {
	PersistentObject
	Name  string
	Level uint32
}

func newAccount() *account { return &account{} }

func (a *account) IsValid(recursive bool) bool { return a.Name != "" }

func (a *account) Load(in *InStream) error {
	name, err := ReadString(in)
	if err != nil {
		return err
	}
	a.Name = name
	in.Stream.ReadUint32(&a.Level)
	return in.Err()
}

func (a *account) Save(out *OutStream) error {
	if err := WriteString(out, a.Name); err != nil {
		return err
	}
	out.Stream.WriteUint32(a.Level)
	return out.Err()
}

func (a *account) LoadXML(doc *etree.Document, root *etree.Element) error {
	if err := XMLString(root, "name", &a.Name, true); err != nil {
		return err
	}
	return XMLInteger(root, "level", &a.Level, false)
}

func (a *account) SaveXML(doc *etree.Document, root *etree.Element) error {
	SetXMLMember(root, "name", a.Name)
	SetXMLMember(root, "level", FormatInteger(a.Level))
	return nil
}

func (a *account) DynamicSizeCount() uint16 { return 1 }

// character is a plain object with three variable-length fields and a
// reference to a persistent account.
type character struct {
	ID      uint32
	Name    string
	Alive   bool
	Speed   float32
	Skills  []uint16
	Titles  []string
	Account *account
}

func newCharacter() *character { return &character{} }

func (c *character) IsValid(recursive bool) bool {
	if c.Name == "" || len(c.Skills) > 8 {
		return false
	}
	if recursive && c.Account != nil {
		return c.Account.IsValid(true)
	}
	return true
}

func (c *character) Load(in *InStream) error {
	var err error
	in.Stream.ReadUint32(&c.ID)
	if c.Name, err = ReadString(in); err != nil {
		return err
	}
	in.Stream.ReadBool(&c.Alive)
	in.Stream.ReadFloat32(&c.Speed)
	c.Skills, err = ReadList(in, func(in *InStream) (uint16, error) {
		var v uint16
		in.Stream.ReadUint16(&v)
		return v, in.Err()
	})
	if err != nil {
		return err
	}
	if c.Titles, err = ReadList(in, ReadString); err != nil {
		return err
	}
	if c.Account, err = ReadRef(in, newAccount); err != nil {
		return err
	}
	return in.Err()
}

func (c *character) Save(out *OutStream) error {
	out.Stream.WriteUint32(c.ID)
	if err := WriteString(out, c.Name); err != nil {
		return err
	}
	out.Stream.WriteBool(c.Alive)
	out.Stream.WriteFloat32(c.Speed)
	err := WriteList(out, c.Skills, func(out *OutStream, v uint16) error {
		out.Stream.WriteUint16(v)
		return out.Err()
	})
	if err != nil {
		return err
	}
	if err := WriteList(out, c.Titles, WriteString); err != nil {
		return err
	}
	return WriteRef(out, c.Account)
}

func (c *character) LoadXML(doc *etree.Document, root *etree.Element) error {
	var err error
	if err = XMLInteger(root, "id", &c.ID, true); err != nil {
		return err
	}
	if err = XMLString(root, "name", &c.Name, true); err != nil {
		return err
	}
	if err = XMLBool(root, "alive", &c.Alive, false); err != nil {
		return err
	}
	if err = XMLFloat(root, "speed", &c.Speed, false); err != nil {
		return err
	}
	if c.Skills, err = LoadXMLList(root, "skills", ParseInteger[uint16], false); err != nil {
		return err
	}
	titles := func(s string) (string, error) { return s, nil }
	if c.Titles, err = LoadXMLList(root, "titles", titles, false); err != nil {
		return err
	}
	c.Account, err = LoadXMLRef(doc, root, "account", newAccount, false)
	return err
}

func (c *character) SaveXML(doc *etree.Document, root *etree.Element) error {
	SetXMLMember(root, "id", FormatInteger(c.ID))
	SetXMLMember(root, "name", c.Name)
	SetXMLMember(root, "alive", FormatBool(c.Alive))
	SetXMLMember(root, "speed", FormatFloat(c.Speed))
	SaveXMLList(root, "skills", c.Skills, FormatInteger[uint16])
	SaveXMLList(root, "titles", c.Titles, func(s string) string { return s })
	return SaveXMLRef(doc, root, "account", c.Account)
}

func (c *character) DynamicSizeCount() uint16 { return 3 }

func sampleAccount() *account {
	a := newAccount()
	a.PersistentObject = NewPersistentObject()
	a.Name = "omega"
	a.Level = 42
	return a
}

func sampleCharacter() *character {
	return &character{
		ID:      7,
		Name:    "Kazuya",
		Alive:   true,
		Speed:   1.5,
		Skills:  []uint16{10, 20, 30},
		Titles:  []string{"Devil Summoner", ""},
		Account: sampleAccount(),
	}
}

// profile has three variable-length fields, none of which holds another
// variable-length value, so a save pushes exactly three sizes.
type profile struct {
	Level  uint8
	Nick   string
	Scores []uint32
	Motto  string
}

func (p *profile) IsValid(recursive bool) bool { return p.Nick != "" }

func (p *profile) Load(in *InStream) error {
	var err error
	in.Stream.ReadUint8(&p.Level)
	if p.Nick, err = ReadString(in); err != nil {
		return err
	}
	p.Scores, err = ReadList(in, func(in *InStream) (uint32, error) {
		var v uint32
		in.Stream.ReadUint32(&v)
		return v, in.Err()
	})
	if err != nil {
		return err
	}
	p.Motto, err = ReadString(in)
	return err
}

func (p *profile) Save(out *OutStream) error {
	out.Stream.WriteUint8(p.Level)
	if err := WriteString(out, p.Nick); err != nil {
		return err
	}
	err := WriteList(out, p.Scores, func(out *OutStream, v uint32) error {
		out.Stream.WriteUint32(v)
		return out.Err()
	})
	if err != nil {
		return err
	}
	return WriteString(out, p.Motto)
}

func (p *profile) LoadXML(doc *etree.Document, root *etree.Element) error {
	var err error
	if err = XMLInteger(root, "level", &p.Level, false); err != nil {
		return err
	}
	if err = XMLString(root, "nick", &p.Nick, true); err != nil {
		return err
	}
	if p.Scores, err = LoadXMLList(root, "scores", ParseInteger[uint32], false); err != nil {
		return err
	}
	return XMLString(root, "motto", &p.Motto, false)
}

func (p *profile) SaveXML(doc *etree.Document, root *etree.Element) error {
	SetXMLMember(root, "level", FormatInteger(p.Level))
	SetXMLMember(root, "nick", p.Nick)
	SaveXMLList(root, "scores", p.Scores, FormatInteger[uint32])
	SetXMLMember(root, "motto", p.Motto)
	return nil
}

func (p *profile) DynamicSizeCount() uint16 { return 3 }
